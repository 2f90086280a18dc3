package apkg

// collectionSchema is the version 11 collection layout the application imports from packages.
var collectionSchema = []string{
	`CREATE TABLE col (
		id     integer primary key,
		crt    integer not null,
		mod    integer not null,
		scm    integer not null,
		ver    integer not null,
		dty    integer not null,
		usn    integer not null,
		ls     integer not null,
		conf   text not null,
		models text not null,
		decks  text not null,
		dconf  text not null,
		tags   text not null
	)`,
	`CREATE TABLE notes (
		id    integer primary key,
		guid  text not null,
		mid   integer not null,
		mod   integer not null,
		usn   integer not null,
		tags  text not null,
		flds  text not null,
		sfld  integer not null,
		csum  integer not null,
		flags integer not null,
		data  text not null
	)`,
	`CREATE TABLE cards (
		id     integer primary key,
		nid    integer not null,
		did    integer not null,
		ord    integer not null,
		mod    integer not null,
		usn    integer not null,
		type   integer not null,
		queue  integer not null,
		due    integer not null,
		ivl    integer not null,
		factor integer not null,
		reps   integer not null,
		lapses integer not null,
		left   integer not null,
		odue   integer not null,
		odid   integer not null,
		flags  integer not null,
		data   text not null
	)`,
	`CREATE TABLE revlog (
		id      integer primary key,
		cid     integer not null,
		usn     integer not null,
		ease    integer not null,
		ivl     integer not null,
		lastIvl integer not null,
		factor  integer not null,
		time    integer not null,
		type    integer not null
	)`,
	`CREATE TABLE graves (
		usn  integer not null,
		oid  integer not null,
		type integer not null
	)`,
	`CREATE INDEX ix_notes_usn ON notes (usn)`,
	`CREATE INDEX ix_cards_usn ON cards (usn)`,
	`CREATE INDEX ix_revlog_usn ON revlog (usn)`,
	`CREATE INDEX ix_cards_nid ON cards (nid)`,
	`CREATE INDEX ix_cards_sched ON cards (did, queue, due)`,
	`CREATE INDEX ix_revlog_cid ON revlog (cid)`,
	`CREATE INDEX ix_notes_csum ON notes (csum)`,
}

const (
	insertCollection = `INSERT INTO col VALUES
		(:id, :crt, :mod, :scm, :ver, :dty, :usn, :ls, :conf, :models, :decks, :dconf, :tags)`
	insertNote = `INSERT INTO notes VALUES
		(:id, :guid, :mid, :mod, :usn, :tags, :flds, :sfld, :csum, :flags, :data)`
	insertCard = `INSERT INTO cards VALUES
		(:id, :nid, :did, :ord, :mod, :usn, :type, :queue, :due, :ivl, :factor, :reps, :lapses, :left, :odue, :odid, :flags, :data)`
)

type collectionRow struct {
	ID     int64  `db:"id"`
	Crt    int64  `db:"crt"`
	Mod    int64  `db:"mod"`
	Scm    int64  `db:"scm"`
	Ver    int    `db:"ver"`
	Dty    int    `db:"dty"`
	Usn    int    `db:"usn"`
	Ls     int64  `db:"ls"`
	Conf   string `db:"conf"`
	Models string `db:"models"`
	Decks  string `db:"decks"`
	Dconf  string `db:"dconf"`
	Tags   string `db:"tags"`
}

type noteRow struct {
	ID    int64  `db:"id"`
	GUID  string `db:"guid"`
	Mid   int64  `db:"mid"`
	Mod   int64  `db:"mod"`
	Usn   int    `db:"usn"`
	Tags  string `db:"tags"`
	Flds  string `db:"flds"`
	Sfld  string `db:"sfld"`
	Csum  int64  `db:"csum"`
	Flags int    `db:"flags"`
	Data  string `db:"data"`
}

type cardRow struct {
	ID     int64  `db:"id"`
	Nid    int64  `db:"nid"`
	Did    int64  `db:"did"`
	Ord    int    `db:"ord"`
	Mod    int64  `db:"mod"`
	Usn    int    `db:"usn"`
	Type   int    `db:"type"`
	Queue  int    `db:"queue"`
	Due    int64  `db:"due"`
	Ivl    int    `db:"ivl"`
	Factor int    `db:"factor"`
	Reps   int    `db:"reps"`
	Lapses int    `db:"lapses"`
	Left   int    `db:"left"`
	Odue   int64  `db:"odue"`
	Odid   int64  `db:"odid"`
	Flags  int    `db:"flags"`
	Data   string `db:"data"`
}

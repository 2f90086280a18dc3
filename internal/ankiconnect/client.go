// Package ankiconnect talks to a running flashcard application through its remote-control HTTP endpoint.
package ankiconnect

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"
)

//go:generate mockgen -source=client.go -destination=../mocks/ankiconnect/mock_service.go -package=mock_ankiconnect

// Service is the set of actions the sync commands need.
type Service interface {
	Version(ctx context.Context) (int, error)
	DeckNames(ctx context.Context) ([]string, error)
	FindNotes(ctx context.Context, query string) ([]int64, error)
	NotesInfo(ctx context.Context, ids []int64) ([]NoteInfo, error)
	ModelNames(ctx context.Context) ([]string, error)
	ModelFieldNames(ctx context.Context, modelName string) ([]string, error)
	CreateDeck(ctx context.Context, name string) (int64, error)
	AddNotes(ctx context.Context, notes []NewNote) ([]*int64, error)
	StoreMediaFile(ctx context.Context, filename string, data []byte) (string, error)
	MediaDirPath(ctx context.Context) (string, error)
}

const (
	DefaultURL     = "http://localhost:8765"
	DefaultVersion = 6
)

type Options struct {
	URL           string
	APIKey        string
	Version       int
	Timeout       time.Duration
	RetryAttempts uint
}

type Client struct {
	httpClient       *resty.Client
	apiKey           string
	version          int
	maxRetryAttempts uint
	retryDelay       time.Duration
}

var _ Service = (*Client)(nil)

func NewClient(opts Options) *Client {
	if opts.URL == "" {
		opts.URL = DefaultURL
	}
	if opts.Version == 0 {
		opts.Version = DefaultVersion
	}

	client := resty.New()
	client.SetBaseURL(opts.URL)
	client.SetHeader("Content-Type", "application/json")
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	return &Client{
		httpClient:       client,
		apiKey:           opts.APIKey,
		version:          opts.Version,
		maxRetryAttempts: opts.RetryAttempts,
		retryDelay:       500 * time.Millisecond,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

type envelope struct {
	Action  string `json:"action"`
	Version int    `json:"version"`
	Params  any    `json:"params,omitempty"`
	Key     string `json:"key,omitempty"`
}

type reply struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

// Do sends one request and decodes its result into result, which may be nil.
// Connectivity failures are retried up to the configured number of attempts and wrap ErrUnreachable.
func (client *Client) Do(ctx context.Context, request Request, result any) error {
	return retry.Do(
		func() error {
			return client.do(ctx, request, result)
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.Delay(client.retryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(IsUnreachable),
		retry.OnRetry(func(n uint, err error) {
			slog.Default().Info("retrying anki request",
				slog.String("action", request.Action()),
				slog.Uint64("attempt", uint64(n+1)),
				slog.Any("error", err),
			)
		}),
	)
}

func (client *Client) do(ctx context.Context, request Request, result any) error {
	body := envelope{
		Action:  request.Action(),
		Version: client.version,
		Params:  request.params(),
		Key:     client.apiKey,
	}

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&reply{}).
		SetForceResponseContentType("application/json").
		Post("/")
	if err != nil {
		return fmt.Errorf("%w: httpClient.Post(%s) > %v", ErrUnreachable, request.Action(), err)
	}
	if response.IsError() {
		return fmt.Errorf("%w: %s responded %d: %s", ErrUnreachable, request.Action(), response.StatusCode(), response.String())
	}

	decoded, ok := response.Result().(*reply)
	if !ok || decoded == nil {
		return fmt.Errorf("empty response for %s", request.Action())
	}
	if decoded.Error != nil {
		return &APIError{Action: request.Action(), Message: *decoded.Error}
	}
	if result == nil || len(decoded.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(decoded.Result, result); err != nil {
		return fmt.Errorf("json.Unmarshal(%s) > %w", request.Action(), err)
	}
	return nil
}

func (client *Client) Version(ctx context.Context) (int, error) {
	var version int
	if err := client.Do(ctx, VersionRequest{}, &version); err != nil {
		return 0, err
	}
	return version, nil
}

func (client *Client) DeckNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := client.Do(ctx, DeckNamesRequest{}, &names); err != nil {
		return nil, err
	}
	return names, nil
}

func (client *Client) FindNotes(ctx context.Context, query string) ([]int64, error) {
	var ids []int64
	if err := client.Do(ctx, FindNotesRequest{Query: query}, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (client *Client) NotesInfo(ctx context.Context, ids []int64) ([]NoteInfo, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var notes []NoteInfo
	if err := client.Do(ctx, NotesInfoRequest{Notes: ids}, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (client *Client) ModelNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := client.Do(ctx, ModelNamesRequest{}, &names); err != nil {
		return nil, err
	}
	return names, nil
}

func (client *Client) ModelFieldNames(ctx context.Context, modelName string) ([]string, error) {
	var names []string
	if err := client.Do(ctx, ModelFieldNamesRequest{ModelName: modelName}, &names); err != nil {
		return nil, err
	}
	return names, nil
}

func (client *Client) CreateDeck(ctx context.Context, name string) (int64, error) {
	var id int64
	if err := client.Do(ctx, CreateDeckRequest{Deck: name}, &id); err != nil {
		return 0, err
	}
	return id, nil
}

// AddNotes returns one entry per note: the new note id, or nil when the note was rejected as a duplicate.
func (client *Client) AddNotes(ctx context.Context, notes []NewNote) ([]*int64, error) {
	if len(notes) == 0 {
		return nil, nil
	}
	var ids []*int64
	if err := client.Do(ctx, AddNotesRequest{Notes: notes}, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// StoreMediaFile uploads data under filename and returns the name the application stored it as.
func (client *Client) StoreMediaFile(ctx context.Context, filename string, data []byte) (string, error) {
	var stored string
	request := StoreMediaFileRequest{
		Filename: filename,
		Data:     base64.StdEncoding.EncodeToString(data),
	}
	if err := client.Do(ctx, request, &stored); err != nil {
		return "", err
	}
	return stored, nil
}

func (client *Client) MediaDirPath(ctx context.Context) (string, error) {
	var dir string
	if err := client.Do(ctx, MediaDirPathRequest{}, &dir); err != nil {
		return "", err
	}
	return dir, nil
}

// Package coretest provides a Discord session backed by a local HTTP server
// that records interaction replies.
package coretest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
)

// Request is one REST call received by the fake API.
type Request struct {
	Method string
	Path   string
	Body   []byte
}

// Recorder collects requests made by the session.
type Recorder struct {
	mu       sync.Mutex
	requests []Request
	commands []*discordgo.ApplicationCommand
}

// SetCommands sets the commands returned for GET requests on command collections.
func (r *Recorder) SetCommands(commands []*discordgo.ApplicationCommand) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = commands
}

func (r *Recorder) add(req Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
}

// Requests returns the recorded requests in arrival order.
func (r *Recorder) Requests() []Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Request, len(r.requests))
	copy(out, r.requests)
	return out
}

// Responses decodes the interaction callbacks.
func (r *Recorder) Responses() []discordgo.InteractionResponse {
	var out []discordgo.InteractionResponse
	for _, req := range r.Requests() {
		if !strings.HasSuffix(req.Path, "/callback") {
			continue
		}
		var resp discordgo.InteractionResponse
		_ = json.Unmarshal(req.Body, &resp)
		out = append(out, resp)
	}
	return out
}

// Edits returns the contents written to the original interaction response.
func (r *Recorder) Edits() []string {
	var out []string
	for _, req := range r.Requests() {
		if req.Method != http.MethodPatch || !strings.HasSuffix(req.Path, "/messages/@original") {
			continue
		}
		var edit struct {
			Content string `json:"content"`
		}
		_ = json.Unmarshal(req.Body, &edit)
		out = append(out, edit.Content)
	}
	return out
}

// Calls returns the requests for method whose path ends with suffix.
func (r *Recorder) Calls(method, suffix string) []Request {
	var out []Request
	for _, req := range r.Requests() {
		if req.Method == method && strings.HasSuffix(req.Path, suffix) {
			out = append(out, req)
		}
	}
	return out
}

// NewSession returns a bot session whose REST calls go to a recording server.
// The session user is set to "app" so command sync can run.
func NewSession(t *testing.T) (*discordgo.Session, *Recorder) {
	t.Helper()
	rec := &Recorder{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		rec.add(Request{Method: r.Method, Path: r.URL.Path, Body: body})

		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/commands") {
			rec.mu.Lock()
			commands := rec.commands
			rec.mu.Unlock()
			if commands == nil {
				commands = []*discordgo.ApplicationCommand{}
			}
			_ = json.NewEncoder(w).Encode(commands)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	target, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("parse server url: %v", err)
	}

	session, err := discordgo.New("Bot test-token")
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	session.Client = &http.Client{Transport: rewriteTransport{target: target, base: server.Client().Transport}}
	session.State.User = &discordgo.User{ID: "app"}
	return session, rec
}

// rewriteTransport sends every request to target, keeping the path.
type rewriteTransport struct {
	target *url.URL
	base   http.RoundTripper
}

func (t rewriteTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.URL.Scheme = t.target.Scheme
	r.URL.Host = t.target.Host
	r.Host = t.target.Host
	return t.base.RoundTrip(r)
}

// SlashCommand builds a slash command interaction.
func SlashCommand(name string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return interaction(discordgo.InteractionApplicationCommand, name, options)
}

// Autocomplete builds an autocomplete interaction.
func Autocomplete(name string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return interaction(discordgo.InteractionApplicationCommandAutocomplete, name, options)
}

func interaction(kind discordgo.InteractionType, name string, options []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	if options == nil {
		options = []*discordgo.ApplicationCommandInteractionDataOption{}
	}
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:      "interaction-" + name,
			AppID:   "app",
			Token:   "token",
			Type:    kind,
			GuildID: "guild",
			Member:  &discordgo.Member{User: &discordgo.User{ID: "user"}},
			Data: discordgo.ApplicationCommandInteractionData{
				ID:      "cmd-" + name,
				Name:    name,
				Options: options,
			},
		},
	}
}

// StringOption builds a string option.
func StringOption(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionString, Value: value}
}

// IntOption builds an integer option the way Discord encodes it.
func IntOption(name string, value int) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionInteger, Value: float64(value)}
}

// Focused marks opt as the option being completed.
func Focused(opt *discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	opt.Focused = true
	return opt
}

package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MathCatch_Go/internal/domain"
	"github.com/osse101/MathCatch_Go/internal/game"
	"github.com/osse101/MathCatch_Go/internal/inventory"
	"github.com/osse101/MathCatch_Go/internal/spawn"
)

// capturedRequest is one call the session made to the Discord API
type capturedRequest struct {
	Method string
	Path   string
	Body   []byte
}

// captureTransport answers every Discord API call with {} and records it
type captureTransport struct {
	mu       sync.Mutex
	requests []capturedRequest
}

func (c *captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
	}
	c.mu.Lock()
	c.requests = append(c.requests, capturedRequest{Method: req.Method, Path: req.URL.Path, Body: body})
	c.mu.Unlock()

	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewBufferString("{}")),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

func (c *captureTransport) all() []capturedRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]capturedRequest(nil), c.requests...)
}

// lastEdit decodes the most recent deferred-response edit
func (c *captureTransport) lastEdit(t *testing.T) discordgo.WebhookEdit {
	t.Helper()
	reqs := c.all()
	for n := len(reqs) - 1; n >= 0; n-- {
		if reqs[n].Method == http.MethodPatch {
			var edit discordgo.WebhookEdit
			require.NoError(t, json.Unmarshal(reqs[n].Body, &edit))
			return edit
		}
	}
	t.Fatal("no interaction edit captured")
	return discordgo.WebhookEdit{}
}

// editText returns the content or the first embed's description of the last edit
func (c *captureTransport) editText(t *testing.T) string {
	t.Helper()
	edit := c.lastEdit(t)
	if edit.Content != nil {
		return *edit.Content
	}
	require.NotNil(t, edit.Embeds)
	require.NotEmpty(t, *edit.Embeds)
	return (*edit.Embeds)[0].Description
}

// lastResponse decodes the most recent immediate interaction response
func (c *captureTransport) lastResponse(t *testing.T) discordgo.InteractionResponse {
	t.Helper()
	reqs := c.all()
	for n := len(reqs) - 1; n >= 0; n-- {
		if reqs[n].Method == http.MethodPost {
			var resp discordgo.InteractionResponse
			require.NoError(t, json.Unmarshal(reqs[n].Body, &resp))
			return resp
		}
	}
	t.Fatal("no interaction response captured")
	return discordgo.InteractionResponse{}
}

func newTestSession(t *testing.T) (*discordgo.Session, *captureTransport) {
	t.Helper()
	s, err := discordgo.New("Bot test-token")
	require.NoError(t, err)
	tr := &captureTransport{}
	s.Client = &http.Client{Transport: tr}
	return s, tr
}

// MockGame is a testify mock of Game
type MockGame struct {
	mock.Mock
}

func (m *MockGame) HandleMessage(ctx context.Context, msg domain.Message) game.MessageResult {
	args := m.Called(ctx, msg)
	return args.Get(0).(game.MessageResult)
}

func (m *MockGame) AuthorizeAdmin(ctx context.Context, userID string, guildAdmin bool) error {
	return m.Called(ctx, userID, guildAdmin).Error(0)
}

func (m *MockGame) Summon(ctx context.Context, channelID, userID string, guildAdmin bool) (domain.ActiveSpawn, error) {
	args := m.Called(ctx, channelID, userID, guildAdmin)
	return args.Get(0).(domain.ActiveSpawn), args.Error(1)
}

func (m *MockGame) SetProbability(ctx context.Context, channelID, guildID string, p float64) (domain.SpawnRule, bool, error) {
	args := m.Called(ctx, channelID, guildID, p)
	return args.Get(0).(domain.SpawnRule), args.Bool(1), args.Error(2)
}

func (m *MockGame) SetInterval(ctx context.Context, channelID, guildID string, seconds int) (domain.SpawnRule, bool, error) {
	args := m.Called(ctx, channelID, guildID, seconds)
	return args.Get(0).(domain.SpawnRule), args.Bool(1), args.Error(2)
}

func (m *MockGame) RemoveRule(ctx context.Context, channelID string) (bool, error) {
	args := m.Called(ctx, channelID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGame) ListRules(guildID string) []domain.SpawnRule {
	return m.Called(guildID).Get(0).([]domain.SpawnRule)
}

func (m *MockGame) Status(channelID string) spawn.Status {
	return m.Called(channelID).Get(0).(spawn.Status)
}

// MockCollection is a testify mock of Collection
type MockCollection struct {
	mock.Mock
}

func (m *MockCollection) Inventory(ctx context.Context, userID, lang string) (*inventory.View, error) {
	args := m.Called(ctx, userID, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.View), args.Error(1)
}

func (m *MockCollection) Completion(ctx context.Context, userID string) (inventory.Completion, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(inventory.Completion), args.Error(1)
}

func (m *MockCollection) Remaining(ctx context.Context, userID string) ([]domain.Item, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockCollection) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
}

func (m *MockCollection) CountObjects() int {
	return m.Called().Int(0)
}

// MockRoles is a testify mock of Roles
type MockRoles struct {
	mock.Mock
}

func (m *MockRoles) Grant(ctx context.Context, actorID, userID string, role domain.Role) error {
	return m.Called(ctx, actorID, userID, role).Error(0)
}

func (m *MockRoles) Revoke(ctx context.Context, actorID, userID string, role domain.Role) error {
	return m.Called(ctx, actorID, userID, role).Error(0)
}

func (m *MockRoles) List(ctx context.Context, actorID string) (map[domain.Role][]string, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.Role][]string), args.Error(1)
}

func (m *MockRoles) Reset(ctx context.Context, actorID string) error {
	return m.Called(ctx, actorID).Error(0)
}

type testServices struct {
	*Services
	game       *MockGame
	collection *MockCollection
	roles      *MockRoles
}

func newTestServices() testServices {
	g, c, r := &MockGame{}, &MockCollection{}, &MockRoles{}
	return testServices{
		Services:   &Services{Game: g, Collection: c, Roles: r},
		game:       g,
		collection: c,
		roles:      r,
	}
}

// createTestInteraction builds a guild slash-command interaction from user "u1" in channel "c1"
func createTestInteraction(commandName string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:        "i1",
			AppID:     "app",
			Token:     "tok",
			Type:      discordgo.InteractionApplicationCommand,
			ChannelID: "c1",
			GuildID:   "g1",
			Locale:    discordgo.German,
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    commandName,
				Options: options,
			},
			Member: &discordgo.Member{
				User: &discordgo.User{ID: "u1", Username: "TestUser"},
			},
		},
	}
}

func subcommand(name string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:    name,
		Type:    discordgo.ApplicationCommandOptionSubCommand,
		Options: options,
	}
}

func numberOpt(name string, v float64) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionNumber, Value: v}
}

// integer options arrive from JSON as float64
func intOpt(name string, v int) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionInteger, Value: float64(v)}
}

func userOpt(id string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: OptUser, Type: discordgo.ApplicationCommandOptionUser, Value: id}
}

func stringOpt(name, v string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionString, Value: v}
}

// run invokes the named command's handler through a default registry
func run(t *testing.T, svc *Services, i *discordgo.InteractionCreate) *captureTransport {
	t.Helper()
	s, tr := newTestSession(t)
	DefaultRegistry().Handle(s, i, svc)
	return tr
}

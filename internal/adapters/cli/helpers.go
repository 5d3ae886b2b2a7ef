package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"

	grpcAdapter "github.com/andrescamacho/domnus-go/internal/adapters/grpc"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
	"github.com/andrescamacho/domnus-go/internal/infrastructure/config"
)

const rpcTimeout = 30 * time.Second

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// loadConfig reads config.yaml and the environment, falling back to defaults
func loadConfig() *config.Config {
	return config.LoadConfigOrDefault(configPath)
}

// resolveKingdomID resolves the kingdom from flags or defaults
// Priority: --kingdom flag > user config default
func resolveKingdomID() (int, error) {
	if kingdomID != noKingdom {
		if kingdomID < 0 {
			return 0, fmt.Errorf("--kingdom must not be negative")
		}
		return kingdomID, nil
	}

	userConfigHandler, err := config.NewUserConfigHandler()
	if err != nil {
		return 0, fmt.Errorf("no kingdom specified and failed to load user config: %w", err)
	}
	userCfg, err := userConfigHandler.Load()
	if err != nil {
		return 0, fmt.Errorf("no kingdom specified and failed to load user config: %w", err)
	}
	if userCfg.DefaultKingdomID != nil {
		return *userCfg.DefaultKingdomID, nil
	}

	return 0, fmt.Errorf("no kingdom specified: use --kingdom, or set a default with 'domnus config set-kingdom'")
}

// resolveServer picks the service address: --server > user config > server.address
func resolveServer() string {
	if serverAddr != "" {
		return serverAddr
	}
	if h, err := config.NewUserConfigHandler(); err == nil {
		if userCfg, err := h.Load(); err == nil && userCfg.Server != "" {
			return userCfg.Server
		}
	}
	return loadConfig().Server.Address
}

// withEconomyClient dials the service, runs fn with a bounded context and closes the connection
func withEconomyClient(fn func(ctx context.Context, client *grpcAdapter.EconomyClient) error) error {
	address := resolveServer()
	if verbose {
		fmt.Printf("Connecting to economy service at %s\n", address)
	}

	client, err := grpcAdapter.NewEconomyClient(address)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
	defer cancel()

	return explainError(fn(ctx, client))
}

// explainError turns engine errors into the message a player should see
func explainError(err error) error {
	if err == nil {
		return nil
	}
	var rejection *shared.Rejection
	if errors.As(err, &rejection) {
		return fmt.Errorf("order rejected: %s", rejection.Message)
	}
	var verr *shared.ValidationError
	if errors.As(err, &verr) {
		return fmt.Errorf("invalid input for %s: %s", verr.Field, verr.Message)
	}
	return err
}

// parseAssignments reads "kind=count" arguments. Counts are passed through
// untouched so the service applies its own numeric rules.
func parseAssignments(args []string) (grpcAdapter.Document, error) {
	doc := grpcAdapter.Document{}
	for _, arg := range args {
		kind, value, ok := strings.Cut(arg, "=")
		kind = strings.TrimSpace(kind)
		if !ok || kind == "" {
			return nil, fmt.Errorf("expected kind=count, got %q", arg)
		}
		if _, dup := doc[kind]; dup {
			return nil, fmt.Errorf("%s given more than once", kind)
		}
		doc[kind] = value
	}
	return doc, nil
}

// parseCounts is parseAssignments for callers that need integers up front
func parseCounts(args []string) (map[string]int, error) {
	doc, err := parseAssignments(args)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(doc))
	for kind, raw := range doc {
		var n int
		if _, err := fmt.Sscanf(strings.TrimSpace(raw.(string)), "%d", &n); err != nil {
			return nil, fmt.Errorf("%s: %q is not a whole number", kind, raw)
		}
		counts[kind] = n
	}
	return counts, nil
}

// asInt reads a numeric document field; Struct numbers decode as float64
func asInt(v interface{}) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return 0
}

func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}

func asDoc(v interface{}) grpcAdapter.Document {
	if m, ok := v.(map[string]interface{}); ok {
		return m
	}
	return grpcAdapter.Document{}
}

func sortedKeys(doc grpcAdapter.Document) []string {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// formatTimestamp renders a wire timestamp for humans; unparsable values pass through
func formatTimestamp(raw interface{}) string {
	s, _ := raw.(string)
	t, err := time.Parse(grpcAdapter.TimeLayout, s)
	if err != nil {
		return s
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v interface{}) error {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(bytes))
	return err
}

// maskPassword hides the password part of a database URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); !ok {
		return raw
	}
	u.User = url.UserPassword(u.User.Username(), "xxxxx")
	return u.String()
}

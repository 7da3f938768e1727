package bot

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

//go:embed messages.json
var defaultMessages []byte

// Catalog holds the named printf templates the bot speaks with.
type Catalog map[string]string

// LoadMessages returns the template catalog, read from path if given,
// otherwise the embedded default. A missing or unreadable override is an
// error for the caller: the bot cannot speak without its templates.
func LoadMessages(path string) (Catalog, error) {
	data := defaultMessages
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read messages %s: %w", path, err)
		}
		data = b
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}

	return c, nil
}

// Render formats the named template. An unknown name renders empty and is
// logged, so a sparse catalog loses a message rather than the session.
func (c Catalog) Render(name string, args ...any) string {
	t, ok := c[name]
	if !ok {
		slog.Error("missing message template", "name", name)
		return ""
	}
	return fmt.Sprintf(t, args...)
}

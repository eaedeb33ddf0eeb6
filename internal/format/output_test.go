package format

import (
	"bytes"
	"strings"
	"testing"

	"kanban-cli/internal/model"
)

func sampleBoard() model.Board {
	return model.Board{Columns: []model.Column{
		{ID: "todo", Title: "To Do", Cards: []model.Card{{ID: "1", Text: "Learn Go"}}},
		{ID: "done", Title: "Done", Cards: []model.Card{}},
	}}
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleBoard(), "json", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := `{"columns":[{"id":"todo","title":"To Do","cards":[{"id":"1","text":"Learn Go"}]},{"id":"done","title":"Done","cards":[]}]}` + "\n"
	if buf.String() != want {
		t.Fatalf("got  %s\nwant %s", buf.String(), want)
	}
}

func TestWrite_JSONPrettySortsMapKeys(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"b": 1, "a": 2}, "", true); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := buf.String(); got != "{\n  \"a\": 2,\n  \"b\": 1\n}\n" {
		t.Fatalf("unexpected pretty output: %q", got)
	}
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleBoard(), "yaml", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"columns:", "- id: todo", "title: To Do", "text: Learn Go", "cards: []"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in yaml output, got:\n%s", want, out)
		}
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, 1, "edn", false); err == nil {
		t.Fatalf("expected an error for an unknown format")
	}
}

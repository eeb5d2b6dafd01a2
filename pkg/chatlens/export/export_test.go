package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cognicore/chatlens/pkg/chatlens/internalerr"
)

const sampleExport = `[
  {
    "title": "go questions",
    "create_time": 1700000000,
    "mapping": {
      "root": {"id": "root", "message": null},
      "n2": {
        "id": "n2",
        "message": {
          "author": {"role": "assistant"},
          "create_time": 1700000002,
          "content": {"content_type": "text", "parts": ["Use sort.Slice."]}
        }
      },
      "n1": {
        "id": "n1",
        "message": {
          "author": {"role": "user"},
          "create_time": 1700000001,
          "content": {"content_type": "text", "parts": ["How do I sort a slice?"]}
        }
      },
      "sys": {
        "id": "sys",
        "message": {
          "author": {"role": "system"},
          "create_time": 1700000000,
          "content": {"content_type": "text", "parts": ["system prompt"]}
        }
      }
    }
  },
  {
    "title": "empty conversation",
    "create_time": 1700000100,
    "mapping": {}
  },
  {
    "title": "nulls and html",
    "create_time": 1700000200,
    "mapping": {
      "a": {
        "id": "a",
        "message": {
          "author": {"role": "user"},
          "create_time": null,
          "content": {"content_type": "text", "parts": [null, "<p>What is <b>NMF</b>?</p>"]}
        }
      },
      "b": {
        "id": "b",
        "message": {
          "author": {"role": "user"},
          "create_time": 1700000201,
          "content": {"content_type": "text", "parts": [""]}
        }
      }
    }
  }
]`

func TestLoadFromReader(t *testing.T) {
	convs, err := LoadFromReader(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}

	// Empty conversation is skipped.
	if len(convs) != 2 {
		t.Fatalf("Expected 2 conversations, got %d", len(convs))
	}

	first := convs[0]
	if len(first.Messages) != 2 {
		t.Fatalf("Expected 2 turns in first conversation, got %d", len(first.Messages))
	}
	// Ordered by create_time despite map ordering; system turn excluded.
	if first.Messages[0].Role != "user" || first.Messages[0].Text != "How do I sort a slice?" {
		t.Errorf("First turn wrong: %+v", first.Messages[0])
	}
	if first.Messages[1].Role != "assistant" {
		t.Errorf("Second turn should be the assistant, got %+v", first.Messages[1])
	}
}

func TestLoadFromReaderStripsHTML(t *testing.T) {
	convs, err := LoadFromReader(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}

	msgs := UserMessages(convs)
	found := false
	for _, m := range msgs {
		if m == "What is NMF?" {
			found = true
		}
		if strings.Contains(m, "<") {
			t.Errorf("Message still contains HTML: %q", m)
		}
	}
	if !found {
		t.Errorf("HTML message not reduced to plain text: %v", msgs)
	}
}

func TestUserMessagesExcludesAssistant(t *testing.T) {
	convs, err := LoadFromReader(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}

	msgs := UserMessages(convs)
	if len(msgs) != 2 {
		t.Fatalf("Expected 2 user messages, got %d: %v", len(msgs), msgs)
	}
	for _, m := range msgs {
		if m == "Use sort.Slice." {
			t.Error("Assistant turn leaked into user messages")
		}
	}
}

func TestFlatten(t *testing.T) {
	convs, err := LoadFromReader(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}

	all := Flatten(convs)
	if len(all) != 3 {
		t.Errorf("Expected 3 turns total, got %d", len(all))
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, internalerr.ErrLoad) {
		t.Errorf("Missing file should be ErrLoad, got %v", err)
	}
}

func TestLoadMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"not": "an array"}`), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	_, err := Load(path)
	if !errors.Is(err, internalerr.ErrLoad) {
		t.Errorf("Non-array export should be ErrLoad, got %v", err)
	}
}

func TestLoadFromReaderEmptyArray(t *testing.T) {
	convs, err := LoadFromReader(strings.NewReader(`[]`))
	if err != nil {
		t.Fatalf("Empty array should load: %v", err)
	}
	if len(convs) != 0 {
		t.Errorf("Expected no conversations, got %d", len(convs))
	}
}

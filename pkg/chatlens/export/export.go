// Package export parses chat-assistant conversation exports: a JSON
// array of conversations, each holding a mapping of message nodes.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/cognicore/chatlens/pkg/chatlens/internalerr"
)

// Message is one conversational turn.
type Message struct {
	Role string
	Text string
}

// Conversation is an ordered sequence of user/assistant turns.
type Conversation struct {
	Title    string
	Messages []Message
}

type rawConversation struct {
	Title      string             `json:"title"`
	CreateTime float64            `json:"create_time"`
	Mapping    map[string]rawNode `json:"mapping"`
}

type rawNode struct {
	ID      string      `json:"id"`
	Message *rawMessage `json:"message"`
}

type rawMessage struct {
	Author     rawAuthor  `json:"author"`
	CreateTime float64    `json:"create_time"`
	Content    rawContent `json:"content"`
}

type rawAuthor struct {
	Role string `json:"role"`
}

type rawContent struct {
	ContentType string `json:"content_type"`
	Parts       []any  `json:"parts"`
}

// Load reads a conversation export file.
func Load(path string) ([]Conversation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export %s: %w: %w", path, internalerr.ErrLoad, err)
	}
	defer f.Close()

	convs, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("parse export %s: %w", path, err)
	}
	return convs, nil
}

// LoadFromReader parses a conversation export from r. The top level
// must be a JSON array of conversation objects; conversations that
// yield no user/assistant turns are skipped.
func LoadFromReader(r io.Reader) ([]Conversation, error) {
	var raw []rawConversation
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decode conversations: %w", internalerr.ErrLoad, err)
	}

	var convs []Conversation
	for i, rc := range raw {
		conv := convert(rc)
		if len(conv.Messages) == 0 {
			log.Printf("Warning: skipping conversation %d (%q): no usable messages", i, rc.Title)
			continue
		}
		convs = append(convs, conv)
	}
	return convs, nil
}

// convert flattens one conversation's node mapping into an ordered
// message list. JSON maps are unordered, so nodes are sorted by
// creation time with node-id tie-break for a deterministic sequence.
func convert(rc rawConversation) Conversation {
	type timedNode struct {
		key string
		msg *rawMessage
	}

	var nodes []timedNode
	for key, node := range rc.Mapping {
		if node.Message == nil {
			continue
		}
		role := node.Message.Author.Role
		if role != "user" && role != "assistant" {
			continue
		}
		nodes = append(nodes, timedNode{key: key, msg: node.Message})
	}

	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].msg.CreateTime == nodes[j].msg.CreateTime {
			return nodes[i].key < nodes[j].key
		}
		return nodes[i].msg.CreateTime < nodes[j].msg.CreateTime
	})

	conv := Conversation{Title: rc.Title}
	for _, n := range nodes {
		text := firstTextPart(n.msg.Content.Parts)
		if text == "" {
			continue
		}
		conv.Messages = append(conv.Messages, Message{
			Role: n.msg.Author.Role,
			Text: text,
		})
	}
	return conv
}

// firstTextPart returns the first string part, reduced to plain text.
// Non-string parts (multimodal payloads) and null parts are skipped.
func firstTextPart(parts []any) string {
	for _, part := range parts {
		s, ok := part.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if strings.ContainsRune(s, '<') && strings.ContainsRune(s, '>') {
			s = strings.TrimSpace(stripHTML(s))
		}
		return s
	}
	return ""
}

// Flatten returns every turn of every conversation in order.
func Flatten(convs []Conversation) []Message {
	var out []Message
	for _, conv := range convs {
		out = append(out, conv.Messages...)
	}
	return out
}

// UserMessages returns the text of every user turn in order. These
// are the documents the analyses run over.
func UserMessages(convs []Conversation) []string {
	var out []string
	for _, conv := range convs {
		for _, msg := range conv.Messages {
			if msg.Role == "user" {
				out = append(out, msg.Text)
			}
		}
	}
	return out
}

func stripHTML(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		// Fallback to string if parsing fails
		return s
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(doc)

	return buf.String()
}

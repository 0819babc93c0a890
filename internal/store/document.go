package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// MetadataVersion is the current version of the ProfileMetadata document.
const MetadataVersion = 1

// maxStoredRecents bounds the recents list when migrating legacy documents.
const maxStoredRecents = 10

// ErrCorruptMetadata is returned when a stored metadata document fails
// validation after migration.
var ErrCorruptMetadata = errors.New("corrupt metadata document")

const metadataSchemaURL = "schema://profile-metadata.json"

const metadataSchemaJSON = `{
  "type": "object",
  "required": ["version", "recents"],
  "properties": {
    "version": {"type": "integer", "minimum": 1},
    "sessionId": {"type": "string"},
    "recents": {
      "type": "array",
      "maxItems": 10,
      "uniqueItems": true,
      "items": {"type": "string", "minLength": 1}
    },
    "quizResult": {
      "type": "object",
      "required": ["score", "total", "timestamp"],
      "properties": {
        "score": {"type": "integer", "minimum": 0},
        "total": {"type": "integer", "minimum": 0},
        "timestamp": {"type": "integer"}
      }
    }
  }
}`

var (
	metadataSchemaOnce sync.Once
	metadataSchema     *jsonschema.Schema
	metadataSchemaErr  error
)

func compiledMetadataSchema() (*jsonschema.Schema, error) {
	metadataSchemaOnce.Do(func() {
		def, err := jsonschema.UnmarshalJSON(strings.NewReader(metadataSchemaJSON))
		if err != nil {
			metadataSchemaErr = fmt.Errorf("parse metadata schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(metadataSchemaURL, def); err != nil {
			metadataSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		metadataSchema, metadataSchemaErr = c.Compile(metadataSchemaURL)
	})
	return metadataSchema, metadataSchemaErr
}

// decodeMetadata parses a stored document, migrating older versions to
// MetadataVersion and validating the result.
func decodeMetadata(sessionID string, version int, raw string) (ProfileMetadata, error) {
	var doc map[string]any
	if strings.TrimSpace(raw) == "" {
		doc = map[string]any{}
	} else if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return ProfileMetadata{}, fmt.Errorf("%w: %v", ErrCorruptMetadata, err)
	}

	if version < 1 {
		doc = migrateV0(doc)
	}

	if err := validateMetadata(doc); err != nil {
		return ProfileMetadata{}, err
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return ProfileMetadata{}, fmt.Errorf("re-marshal metadata: %w", err)
	}
	var md ProfileMetadata
	if err := json.Unmarshal(b, &md); err != nil {
		return ProfileMetadata{}, fmt.Errorf("%w: %v", ErrCorruptMetadata, err)
	}
	md.SessionID = sessionID
	return md, nil
}

// encodeMetadata serializes md after validating it against the schema.
func encodeMetadata(md ProfileMetadata) (string, error) {
	md.Version = MetadataVersion
	if md.Recents == nil {
		md.Recents = []string{}
	}
	b, err := json.Marshal(md)
	if err != nil {
		return "", fmt.Errorf("marshal metadata: %w", err)
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return "", fmt.Errorf("unmarshal metadata: %w", err)
	}
	if err := validateMetadata(doc); err != nil {
		return "", err
	}
	return string(b), nil
}

func validateMetadata(doc any) error {
	sch, err := compiledMetadataSchema()
	if err != nil {
		return err
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptMetadata, err)
	}
	return nil
}

// migrateV0 converts the loosely typed legacy blob, which only carried a
// "recents" array, into a version 1 document. Non-string, empty and
// duplicate entries are dropped.
func migrateV0(doc map[string]any) map[string]any {
	recents := []any{}
	seen := map[string]bool{}
	if list, ok := doc["recents"].([]any); ok {
		for _, v := range list {
			id, ok := v.(string)
			if !ok || id == "" || seen[id] {
				continue
			}
			seen[id] = true
			recents = append(recents, id)
			if len(recents) == maxStoredRecents {
				break
			}
		}
	}

	out := map[string]any{
		"version": MetadataVersion,
		"recents": recents,
	}
	if qr, ok := doc["quizResult"].(map[string]any); ok {
		out["quizResult"] = qr
	}
	return out
}

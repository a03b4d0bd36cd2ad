package store

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/qri-io/jsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// payloadSchemas holds the compiled shape checks applied to stored payloads
// before they are decoded.
type payloadSchemas struct {
	user       *jsonschema.Schema
	collection *jsonschema.Schema
}

func loadSchemas() (*payloadSchemas, error) {
	load := func(name string) (*jsonschema.Schema, error) {
		b, err := schemaFS.ReadFile("schemas/" + name)
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", name, err)
		}
		rs := &jsonschema.Schema{}
		if err := json.Unmarshal(b, rs); err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", name, err)
		}
		return rs, nil
	}

	var ps payloadSchemas
	var err error
	if ps.user, err = load("user.json"); err != nil {
		return nil, err
	}
	if ps.collection, err = load("collection.json"); err != nil {
		return nil, err
	}
	return &ps, nil
}

// mustLoadSchemas panics on a broken embedded schema; that is a build defect.
func mustLoadSchemas() *payloadSchemas {
	ps, err := loadSchemas()
	if err != nil {
		panic(err)
	}
	return ps
}

// validate reports why payload does not match rs, or nil when it does.
func validate(ctx context.Context, rs *jsonschema.Schema, payload []byte) error {
	keyErrs, err := rs.ValidateBytes(ctx, payload)
	if err != nil {
		return err
	}
	if len(keyErrs) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(keyErrs))
	for _, ke := range keyErrs {
		msgs = append(msgs, ke.Error())
	}
	return fmt.Errorf("%w: %s", ErrCorrupt, strings.Join(msgs, "; "))
}

package llm

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"

	"github.com/muhammadolammi/resumeascode/internal/logger"
)

var (
	// StructuredAttempts bounds how often a malformed JSON answer is re-requested.
	StructuredAttempts uint = 3
	// StructuredRetryDelay is the pause between those attempts.
	StructuredRetryDelay = 500 * time.Millisecond
)

// Schema reflects the JSON schema of T.
func Schema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

// StructuredPrompt appends the JSON schema of T and output instructions to
// prompt.
func StructuredPrompt[T any](prompt string) (string, error) {
	schema, err := json.MarshalIndent(Schema[T](), "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal output schema")
	}
	var b strings.Builder
	b.WriteString(prompt)
	b.WriteString("\n\nRespond with a single JSON object that conforms to this JSON schema:\n")
	b.Write(schema)
	b.WriteString("\n\nReturn only valid JSON. Do not include explanations, markdown, or text before or after the JSON.")
	return b.String(), nil
}

// GenerateStructured asks client for a JSON answer and decodes it into T.
// Provider errors are returned immediately; undecodable answers are
// re-requested up to StructuredAttempts times.
func GenerateStructured[T any](ctx context.Context, client Client, system, prompt string) (T, error) {
	var result T

	full, err := StructuredPrompt[T](prompt)
	if err != nil {
		return result, err
	}

	err = retry.Do(
		func() error {
			raw, err := client.Complete(ctx, Request{System: system, Prompt: full, JSON: true})
			if err != nil {
				return retry.Unrecoverable(err)
			}
			var out T
			if err := DecodeJSON(raw, &out); err != nil {
				return err
			}
			result = out
			return nil
		},
		retry.Attempts(StructuredAttempts),
		retry.Delay(StructuredRetryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.G(ctx).WithError(err).WithField("client", client.Name()).
				WithField("attempt", n+1).Warn("model returned malformed JSON, asking again")
		}),
	)
	return result, err
}

// DecodeJSON cleans a model answer and unmarshals it into out.
func DecodeJSON(raw string, out any) error {
	cleaned := CleanJSON(raw)
	if cleaned == "" {
		return errors.New("empty response from model")
	}
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return errors.Wrap(err, "json unmarshal error")
	}
	return nil
}

// CleanJSON strips markdown code fences and any prose around the outermost
// JSON object.
func CleanJSON(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")
	clean = strings.TrimSpace(clean)

	if start, end := strings.Index(clean, "{"), strings.LastIndex(clean, "}"); start >= 0 && end > start {
		clean = clean[start : end+1]
	}
	return clean
}

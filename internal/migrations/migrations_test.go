package migrations

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableDefinition(t *testing.T, schema, table string) string {
	t.Helper()
	re := regexp.MustCompile(`(?s)CREATE TABLE ` + table + ` \((.*?)\n\);`)
	match := re.FindStringSubmatch(schema)
	require.Len(t, match, 2, "table %s not found", table)
	return match[1]
}

func column(t *testing.T, definition, name string) string {
	t.Helper()
	for _, line := range strings.Split(definition, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == name {
			return strings.Join(fields, " ")
		}
	}
	t.Fatalf("column %s not found", name)
	return ""
}

func TestInitSchema(t *testing.T) {
	raw, err := Migrations.ReadFile("00001_init.sql")
	require.NoError(t, err)
	schema := string(raw)

	t.Run("one reset token row per user", func(t *testing.T) {
		tokens := tableDefinition(t, schema, "password_reset_tokens")
		assert.Contains(t, column(t, tokens, "user_id"), "NOT NULL UNIQUE")
	})

	t.Run("activity outlives its user", func(t *testing.T) {
		activity := tableDefinition(t, schema, "activity_logs")
		userID := column(t, activity, "user_id")
		assert.Contains(t, userID, "ON DELETE SET NULL")
		assert.NotContains(t, userID, "NOT NULL")
	})

	t.Run("categories in use cannot be dropped", func(t *testing.T) {
		documents := tableDefinition(t, schema, "documents")
		assert.Contains(t, column(t, documents, "category_id"), "ON DELETE RESTRICT")
	})
}

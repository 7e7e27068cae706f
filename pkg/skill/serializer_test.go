package skill

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize(t *testing.T) {
	t.Run("minimal skill", func(t *testing.T) {
		fm := DefaultFrontmatter()
		fm.Description = "x"
		out := Serialize(fm, "body")
		assert.Equal(t, "---\ndescription: \"x\"\n---\n\nbody\n", out)
	})

	t.Run("defaults are omitted", func(t *testing.T) {
		out := Serialize(DefaultFrontmatter(), "body")
		assert.Equal(t, "---\n---\n\nbody\n", out)
		assert.NotContains(t, out, "user-invocable")
		assert.NotContains(t, out, "disable-model-invocation")
	})

	t.Run("non-default booleans are emitted", func(t *testing.T) {
		fm := DefaultFrontmatter()
		fm.DisableModelInvocation = true
		fm.UserInvocable = false
		out := Serialize(fm, "")
		assert.Contains(t, out, "disable-model-invocation: true\n")
		assert.Contains(t, out, "user-invocable: false\n")
	})

	t.Run("strings are quoted and escaped", func(t *testing.T) {
		fm := DefaultFrontmatter()
		fm.Description = `say "hi" \ bye`
		out := Serialize(fm, "")
		assert.Contains(t, out, `description: "say \"hi\" \\ bye"`)
	})

	t.Run("allowed-tools is emitted unquoted", func(t *testing.T) {
		fm := DefaultFrontmatter()
		fm.AllowedTools = "Bash(git:*), Read"
		out := Serialize(fm, "")
		assert.Contains(t, out, "allowed-tools: Bash(git:*), Read\n")
	})

	t.Run("hooks emitted as indented block", func(t *testing.T) {
		fm := DefaultFrontmatter()
		fm.HooksRaw = "pre-run: echo hi\npost-run: echo bye\n"
		out := Serialize(fm, "")
		assert.Contains(t, out, "hooks:\n  pre-run: echo hi\n  post-run: echo bye\n")
	})

	t.Run("body surrounding newlines are normalized", func(t *testing.T) {
		out := Serialize(DefaultFrontmatter(), "\n\nbody text\n\n\n")
		assert.True(t, strings.HasSuffix(out, "---\n\nbody text\n"))
	})

	t.Run("empty body", func(t *testing.T) {
		out := Serialize(DefaultFrontmatter(), "")
		assert.Equal(t, "---\n---\n", out)
	})
}

func TestRoundTrip(t *testing.T) {
	frontmatters := []Frontmatter{
		func() Frontmatter {
			fm := DefaultFrontmatter()
			fm.Name = "review"
			fm.Description = "Reviews a pull request"
			return fm
		}(),
		func() Frontmatter {
			fm := DefaultFrontmatter()
			fm.Name = "deploy"
			fm.Description = "Deploy: with a colon"
			fm.ArgumentHint = "[env]"
			fm.DisableModelInvocation = true
			fm.UserInvocable = false
			fm.AllowedTools = "Bash, Read"
			fm.Model = "opus"
			fm.Context = "full"
			fm.Agent = "ops"
			return fm
		}(),
		func() Frontmatter {
			fm := DefaultFrontmatter()
			fm.Name = "hooked"
			fm.HooksRaw = "pre-run: echo hi\n"
			return fm
		}(),
	}

	for _, fm := range frontmatters {
		t.Run(fm.Name, func(t *testing.T) {
			body := "# Title\n\nSome body with --- dashes inline.\n"
			serialized := Serialize(fm, body)

			parsed, parsedBody, err := Parse(serialized)
			require.NoError(t, err)
			assert.Equal(t, fm, parsed)
			assert.Equal(t, strings.Trim(body, "\n")+"\n", parsedBody)
		})
	}
}

package validate

import (
	"strings"
	"testing"

	"github.com/pablasso/plankit/internal/plan"
	"github.com/pablasso/plankit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validHeader = `version: 1.0.0
name: Plan
description: A plan
metadata:
  created_by: bob
  created_date: 2026-01-01
  last_modified: 2026-01-02
goals:
  primary:
    - title: G
      description: D
      status: pending
      priority: high
`

func run(t *testing.T, content string, opts Options) []Violation {
	t.Helper()
	f, err := plan.Parse([]byte(content))
	require.NoError(t, err)
	return File(f, opts)
}

func paths(violations []Violation) []string {
	out := make([]string, len(violations))
	for i, v := range violations {
		out[i] = v.Path
	}
	return out
}

func TestValidate_SamplePlanIsValid(t *testing.T) {
	assert.Empty(t, run(t, testutil.SamplePlan, Options{}))
	assert.Empty(t, run(t, testutil.SamplePlan, Options{Strict: true}))
}

func TestValidate_MissingTopLevelFields(t *testing.T) {
	violations := run(t, "other: true\n", Options{})
	assert.Equal(t, []string{"version", "name", "description", "goals", "metadata"}, paths(violations))
	for _, v := range violations {
		assert.Equal(t, "missing required field", v.Message)
	}
}

func TestValidate_AbsentMetadataReportsOnlyItself(t *testing.T) {
	content := strings.Replace(validHeader, "metadata:\n  created_by: bob\n  created_date: 2026-01-01\n  last_modified: 2026-01-02\n", "", 1)
	violations := run(t, content, Options{})
	require.Len(t, violations, 1)
	assert.Equal(t, "metadata", violations[0].Path)
}

func TestValidate_EmptyValuesCountAsMissing(t *testing.T) {
	violations := run(t, "version: \"\"\nname: ~\ndescription: d\ngoals:\n  primary: []\nmetadata:\n  created_by: x\n  created_date: 2026-01-01\n  last_modified: 2026-01-01\n", Options{})
	assert.Equal(t, []string{"version", "name"}, paths(violations))
}

func TestValidate_Version(t *testing.T) {
	violations := run(t, strings.Replace(validHeader, "version: 1.0.0", "version: 1.0", 1), Options{})
	require.Len(t, violations, 1)
	assert.Equal(t, "version", violations[0].Path)
	assert.Equal(t, 1, violations[0].Line)
	assert.Contains(t, violations[0].Message, `"1.0"`)
}

func TestValidate_Goals(t *testing.T) {
	t.Run("primary missing", func(t *testing.T) {
		content := strings.Replace(validHeader, "  primary:\n    - title: G\n      description: D\n      status: pending\n      priority: high\n", "  secondary: []\n", 1)
		violations := run(t, content, Options{})
		assert.Equal(t, []string{"goals.primary"}, paths(violations))
	})

	t.Run("primary not a sequence", func(t *testing.T) {
		content := strings.Replace(validHeader, "  primary:\n    - title: G\n      description: D\n      status: pending\n      priority: high\n", "  primary: none\n", 1)
		violations := run(t, content, Options{})
		assert.Equal(t, []string{"goals.primary"}, paths(violations))
	})

	t.Run("item fields and enums", func(t *testing.T) {
		content := validHeader + `    - title: Second
      status: done
      priority: urgent
  secondary:
    - description: no title
      status: pending
      priority: low
    - title: T
      description: D
      status: blocked
      priority: high
`
		violations := run(t, content, Options{})
		assert.Equal(t, []string{
			"goals.primary[1].description",
			"goals.primary[1].status",
			"goals.primary[1].priority",
			"goals.secondary[0].title",
			"goals.secondary[1].status",
		}, paths(violations))
		assert.Contains(t, violations[1].Message, `"done"`)
	})
}

func TestValidate_Tasks(t *testing.T) {
	t.Run("duplicate id", func(t *testing.T) {
		content := validHeader + `tasks:
  - id: t1
    title: A
    description: A
    status: pending
  - id: t1
    title: B
    description: B
    status: pending
`
		violations := run(t, content, Options{})
		require.Len(t, violations, 1)
		assert.Equal(t, "tasks[1].id", violations[0].Path)
		assert.Contains(t, violations[0].Message, `duplicate task id "t1"`)
	})

	t.Run("missing id does not stop other checks", func(t *testing.T) {
		content := validHeader + `tasks:
  - status: finished
    priority: urgent
`
		violations := run(t, content, Options{})
		assert.Equal(t, []string{
			"tasks[0].id",
			"tasks[0].title",
			"tasks[0].description",
			"tasks[0].status",
			"tasks[0].priority",
		}, paths(violations))
	})

	t.Run("tasks that are not a sequence are ignored", func(t *testing.T) {
		assert.Empty(t, run(t, validHeader+"tasks: none\n", Options{}))
	})
}

const forwardReference = validHeader + `tasks:
  - id: t2
    title: B
    description: B
    status: pending
    dependencies: [t1, t2]
  - id: t1
    title: A
    description: A
    status: pending
    dependencies: [ghost]
`

func TestValidate_DependenciesOrdered(t *testing.T) {
	violations := run(t, forwardReference, Options{})
	require.Len(t, violations, 2)

	assert.Equal(t, "tasks[0].dependencies[0]", violations[0].Path)
	assert.Contains(t, violations[0].Message, `"t1"`)
	assert.Equal(t, "tasks[1].dependencies[0]", violations[1].Path)
	assert.Contains(t, violations[1].Message, `"ghost"`)
}

func TestValidate_DependenciesDeclared(t *testing.T) {
	violations := run(t, forwardReference, Options{Dependencies: DependencyDeclared})
	require.Len(t, violations, 1)
	assert.Equal(t, "tasks[1].dependencies[0]", violations[0].Path)
}

func TestValidate_SelfReferenceAllowed(t *testing.T) {
	content := validHeader + `tasks:
  - id: loop
    title: L
    description: L
    status: pending
    dependencies: [loop]
`
	assert.Empty(t, run(t, content, Options{}))
	assert.Empty(t, run(t, content, Options{Dependencies: DependencyDeclared}))
}

func TestValidate_Metadata(t *testing.T) {
	t.Run("missing fields and bad dates", func(t *testing.T) {
		content := strings.Replace(validHeader, "  created_by: bob\n  created_date: 2026-01-01\n  last_modified: 2026-01-02\n", "  created_date: 01/02/2026\n  last_modified: 2026-1-2\n", 1)
		violations := run(t, content, Options{})
		assert.Equal(t, []string{"metadata.created_by", "metadata.created_date", "metadata.last_modified"}, paths(violations))
	})

	t.Run("not a mapping", func(t *testing.T) {
		content := strings.Replace(validHeader, "metadata:\n  created_by: bob\n  created_date: 2026-01-01\n  last_modified: 2026-01-02\n", "metadata: yesterday\n", 1)
		violations := run(t, content, Options{})
		assert.Equal(t, []string{"metadata"}, paths(violations))
	})
}

func TestValidate_Cumulative(t *testing.T) {
	content := `version: v1
name: n
goals:
  primary:
    - title: x
metadata:
  created_by: c
tasks:
  - id: a
    title: t
    description: d
    status: pending
    dependencies: [b]
`
	violations := run(t, content, Options{})
	assert.Equal(t, []string{
		"description",
		"version",
		"goals.primary[0].description",
		"goals.primary[0].status",
		"goals.primary[0].priority",
		"tasks[0].dependencies[0]",
		"metadata.created_date",
		"metadata.last_modified",
	}, paths(violations))
}

func TestValidate_DoesNotMutate(t *testing.T) {
	f, err := plan.Parse([]byte(forwardReference))
	require.NoError(t, err)
	before, err := f.Encode()
	require.NoError(t, err)

	File(f, Options{Strict: true})

	after, err := f.Encode()
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestValidate_Strict(t *testing.T) {
	content := strings.Replace(validHeader, "status: pending", "status: done", 1)

	relaxed := run(t, content, Options{})
	strict := run(t, content, Options{Strict: true})

	require.Len(t, relaxed, 1)
	require.Greater(t, len(strict), len(relaxed))

	var schemaPaths []string
	for _, v := range strict[len(relaxed):] {
		assert.True(t, strings.HasPrefix(v.Message, "schema: "), v.Message)
		schemaPaths = append(schemaPaths, v.Path)
	}
	assert.Contains(t, schemaPaths, "goals.primary[0].status")
}

func TestValidate_StrictKeepsUnquotedDates(t *testing.T) {
	content := validHeader + `tasks:
  - id: t1
    title: A
    description: A
    status: pending
    due_date: 2026-02-28
milestones:
  - title: M
    date: 2026-03-01
    status: pending
`
	assert.Empty(t, run(t, content, Options{Strict: true}))

	quoted := strings.Replace(content, "due_date: 2026-02-28", `due_date: "2026-02-28"`, 1)
	assert.Empty(t, run(t, quoted, Options{Strict: true}))

	bad := strings.Replace(content, "due_date: 2026-02-28", "due_date: 2026-02-28T10:00:00Z", 1)
	violations := run(t, bad, Options{Strict: true})
	assert.Equal(t, []string{"tasks[0].due_date"}, paths(violations))
}

func TestNodeValue(t *testing.T) {
	f, err := plan.Parse([]byte("a: 2026-01-10\nb: [1, true, ~, x]\nc: &anchor 3\nd: *anchor\n"))
	require.NoError(t, err)

	v, err := nodeValue(f.Root)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"a": "2026-01-10",
		"b": []any{1, true, nil, "x"},
		"c": 3,
		"d": 3,
	}, v)
}

func TestParseDependencyMode(t *testing.T) {
	m, err := ParseDependencyMode("")
	require.NoError(t, err)
	assert.Equal(t, DependencyOrdered, m)

	m, err = ParseDependencyMode("Declared")
	require.NoError(t, err)
	assert.Equal(t, DependencyDeclared, m)

	_, err = ParseDependencyMode("lenient")
	assert.Error(t, err)
}

func TestViolationString(t *testing.T) {
	assert.Equal(t, "tasks[0].id (line 3): missing required field",
		Violation{Path: "tasks[0].id", Message: "missing required field", Line: 3}.String())
	assert.Equal(t, "version: bad", Violation{Path: "version", Message: "bad"}.String())
	assert.Equal(t, "oops", Violation{Message: "oops"}.String())
}

func TestJSONPointerToPath(t *testing.T) {
	assert.Equal(t, "tasks[0].status", jsonPointerToPath("/tasks/0/status"))
	assert.Equal(t, "", jsonPointerToPath(""))
	assert.Equal(t, "goals.primary[2]", jsonPointerToPath("#/goals/primary/2"))
}

func TestSchemaIsJSON(t *testing.T) {
	assert.True(t, strings.Contains(string(Schema()), `"$defs"`))
}

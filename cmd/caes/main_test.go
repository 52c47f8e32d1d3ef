package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Harshitk-cp/caes/internal/format"
	"github.com/Harshitk-cp/caes/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const murderDoc = `name: murder
statements: [kill, intent, murder, witness1, unreliable1, witness2, unreliable2]
arguments:
  - id: arg1
    conclusion: murder
    weight: 0.8
    premises: [{statement: kill}, {statement: intent}]
  - id: arg2
    conclusion: intent
    weight: 0.3
    premises: [{statement: witness1}, {statement: unreliable1, exception: true}]
  - id: arg3
    conclusion: -intent
    weight: 0.8
    premises: [{statement: witness2}, {statement: unreliable2, exception: true}]
audiences:
  - name: jury
    assumptions: [kill, witness1, witness2, unreliable2]
    standards:
      intent: beyond_reasonable_doubt
  - name: credulous
    assumptions: [kill, witness1, witness2, unreliable2]
`

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CAES_ENV", filepath.Join(t.TempDir(), "none.env"))
	t.Setenv("DEFAULT_PROOF_STANDARD", "")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEval_JSON(t *testing.T) {
	path := writeDoc(t, "murder.yaml", murderDoc)

	out, err := run(t, "eval", "-f", path, "--target", "murder", "--target=intent", "--json")
	require.NoError(t, err)

	var report service.EvaluationReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "jury", report.Audience)
	require.Len(t, report.Evaluations, 2)
	assert.False(t, report.Evaluations[0].Accepted)
	assert.False(t, report.Evaluations[1].Accepted)

	out, err = run(t, "eval", "-f", path, "-a", "credulous", "-t", "murder", "--json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.Evaluations[0].Accepted)
}

func TestEval_Table(t *testing.T) {
	path := writeDoc(t, "murder.yaml", murderDoc)

	out, err := run(t, "eval", "-f", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, []string{"STATEMENT", "ACCEPTED", "STANDARD", "PRO", "CON"}, strings.Fields(lines[0]))
	assert.Contains(t, lines[1], "yes (assumed)")
	assert.Equal(t, []string{"intent", "no", "beyond_reasonable_doubt", "arg2(0.3)", "-"}, strings.Fields(lines[2]))
}

func TestEval_Errors(t *testing.T) {
	path := writeDoc(t, "murder.yaml", murderDoc)

	_, err := run(t, "eval")
	assert.Error(t, err)

	_, err = run(t, "eval", "-f", path, "-a", "judge")
	assert.EqualError(t, err, `document "murder" has no audience "judge"`)

	_, err = run(t, "eval", "-f", path, "-t", "treason")
	assert.Error(t, err)

	_, err = run(t, "eval", "-f", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLabel(t *testing.T) {
	path := writeDoc(t, "murder.yaml", murderDoc)

	out, err := run(t, "label", "-f", path, "--json")
	require.NoError(t, err)

	var report service.LabelReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	labels := map[string]service.Label{}
	for _, l := range report.Labels {
		labels[l.Atom] = l.Label
	}
	assert.Equal(t, service.LabelUndecided, labels["murder"])
	assert.Equal(t, service.LabelIn, labels["kill"])

	out, err = run(t, "label", "-f", path, "-a", "credulous")
	require.NoError(t, err)
	assert.Contains(t, out, "murder")
	assert.Equal(t, []string{"STATEMENT", "LABEL"}, strings.Fields(strings.SplitN(out, "\n", 2)[0]))
}

func TestCycles(t *testing.T) {
	path := writeDoc(t, "murder.yaml", murderDoc)
	out, err := run(t, "cycles", "-f", path)
	require.NoError(t, err)
	assert.Equal(t, "no cycles\n", out)

	loop := writeDoc(t, "loop.json", `{"name":"loop","statements":["a","b"],"arguments":[
		{"id":"x","conclusion":"a","premises":[{"statement":"b"}]},
		{"id":"y","conclusion":"b","premises":[{"statement":"a"}]}]}`)
	out, err = run(t, "cycles", "-f", loop)
	require.NoError(t, err)
	assert.Equal(t, "a -> b -> a\n", out)
}

func TestFmt(t *testing.T) {
	path := writeDoc(t, "murder.yaml", murderDoc)
	target := filepath.Join(t.TempDir(), "murder.json")

	_, err := run(t, "fmt", "-f", path, "-o", target)
	require.NoError(t, err)

	doc, err := format.LoadFromPath(target)
	require.NoError(t, err)
	require.Len(t, doc.Arguments, 3)
	assert.Equal(t, "pro", string(doc.Arguments[0].Direction))
	assert.Len(t, doc.Audiences, 2)

	out, err := run(t, "fmt", "-f", path, "--to", "json")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{"))

	bad := writeDoc(t, "bad.yaml", strings.Replace(murderDoc, "beyond_reasonable_doubt", "hunch", 1))
	_, err = run(t, "fmt", "-f", bad)
	assert.Error(t, err)
}

func TestStandards(t *testing.T) {
	out, err := run(t, "standards")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, []string{"STANDARD", "PARAMETERS", "DEFAULT"}, strings.Fields(lines[0]))
	assert.Contains(t, out, "beyond_reasonable_doubt")

	var marked []string
	for _, l := range lines[1:] {
		if strings.HasSuffix(strings.TrimSpace(l), "*") {
			marked = append(marked, strings.Fields(l)[0])
		}
	}
	assert.Equal(t, []string{"scintilla"}, marked)
}

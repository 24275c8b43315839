package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"dadmind/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource map[string][]byte

func (f fakeSource) Fetch(_ context.Context, location string) ([]byte, error) {
	data, ok := f[location]
	if !ok {
		return nil, errors.New("no such document")
	}
	return data, nil
}

type lineDecoder struct{}

func (lineDecoder) Decode(data []byte) ([][]string, error) {
	return [][]string{strings.Fields(string(data))}, nil
}

func testApp(source fakeSource) *App {
	return &App{
		Engine:    domain.DefaultEngine(),
		NewSource: func(time.Duration) domain.DocumentSource { return source },
		Decoder:   lineDecoder{},
	}
}

func execute(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd(app)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestAssessCmd_PrintsReportAndPlan(t *testing.T) {
	answers := writeFile(t, "answers.json", `{"q1": "q1o1", "q29": "q29o1"}`)

	out, err := execute(t, testApp(nil), "assess", "--answers", answers, "--date", "2025-03-05")
	require.NoError(t, err)

	assert.Contains(t, out, "BÁO CÁO ĐÁNH GIÁ TÂM LÝ NAM GIỚI DADMIND")
	assert.Contains(t, out, "Ngày đánh giá: 5/3/2025")
	assert.Contains(t, out, "CÁC DẤU HIỆU CẤP THIẾT CẦN LƯU Ý NGAY")
	assert.Contains(t, out, "KẾ HOẠCH HÀNH ĐỘNG CÁ NHÂN HÓA DADMIND")
}

func TestAssessCmd_Errors(t *testing.T) {
	answers := writeFile(t, "answers.json", `{"q1": "q1o4"}`)
	broken := writeFile(t, "broken.json", `{"q1":`)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing flag", []string{"assess"}, "answers"},
		{"unreadable file", []string{"assess", "--answers", filepath.Join(t.TempDir(), "nope.json")}, "reading answers"},
		{"malformed json", []string{"assess", "--answers", broken}, "parsing answers"},
		{"bad date", []string{"assess", "--answers", answers, "--date", "05/03/2025"}, "invalid --date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, testApp(nil), tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestKnowledgeCmd_ReportsLoadedAndFailed(t *testing.T) {
	cfgPath := writeFile(t, "config.yaml", `
knowledge:
  documents:
    - name: a.pdf
      location: mem://a
    - name: b.pdf
      location: mem://b
`)
	source := fakeSource{"mem://a": []byte("hello world")}

	out, err := execute(t, testApp(source), "kb", "--config", cfgPath)
	require.NoError(t, err)

	assert.Contains(t, out, "loaded  a.pdf (12 chars)")
	assert.Contains(t, out, "failed  failed to load b.pdf: no such document")
	assert.Contains(t, out, "1/2 documents loaded")
}

func TestKnowledgeCmd_NoDocuments(t *testing.T) {
	cfgPath := writeFile(t, "config.yaml", "server:\n  port: 8090\n")

	out, err := execute(t, testApp(fakeSource{}), "kb", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No knowledge documents configured.")
}

func TestMigrateCmd(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "store.db")

	out, err := execute(t, testApp(nil), "migrate", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "schema at version 2")

	out, err = execute(t, testApp(nil), "migrate", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "schema at version 2")
}

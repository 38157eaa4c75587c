package secret

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestStringRedactsDefaultForms(t *testing.T) {
	s := New("hunter2")

	forms := []string{
		s.String(),
		fmt.Sprint(s),
		fmt.Sprintf("%v %s %q %+v %#v", s, s, s, s, s),
		fmt.Sprintf("%v", struct{ Token String }{s}),
	}
	for _, f := range forms {
		if strings.Contains(f, "hunter2") {
			t.Fatalf("secret leaked: %q", f)
		}
	}

	b, err := json.Marshal(map[string]any{"token": s})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(b), "hunter2") {
		t.Fatalf("secret leaked in json: %s", b)
	}
}

func TestStringRedactedInLogs(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, nil))
	l.Info("install", "access_token", New("hunter2"))

	if strings.Contains(buf.String(), "hunter2") {
		t.Fatalf("secret leaked in log: %s", buf.String())
	}
}

func TestExposeAndUnmarshal(t *testing.T) {
	var v struct {
		AccessToken String `json:"access_token"`
	}
	if err := json.Unmarshal([]byte(`{"access_token":"abc"}`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.AccessToken.Expose() != "abc" {
		t.Fatalf("expected raw value, got %q", v.AccessToken.Expose())
	}
	if v.AccessToken.IsEmpty() {
		t.Fatalf("expected non-empty")
	}
	if !New("").IsEmpty() {
		t.Fatalf("expected empty")
	}
}

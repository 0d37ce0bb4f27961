package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestStartSession(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    string
		wantErr bool
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body:   `{"user_id":"abc123"}`,
			want:   "abc123",
		},
		{
			name:    "missing user_id",
			status:  http.StatusOK,
			body:    `{}`,
			wantErr: true,
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `{"message":"down for maintenance"}`,
			wantErr: true,
		},
		{
			name:    "malformed body",
			status:  http.StatusOK,
			body:    `not json`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet || r.URL.Path != "/start-session" {
					t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, time.Second)
			got, err := client.StartSession()
			if (err != nil) != tt.wantErr {
				t.Fatalf("StartSession() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("StartSession() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAsk(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/ask" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("User-ID"); got != "abc123" {
			t.Errorf("User-ID header = %q, want %q", got, "abc123")
		}
		body, _ := io.ReadAll(r.Body)
		var req AskRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		if req.Question != "hello" {
			t.Errorf("question = %q, want %q", req.Question, "hello")
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response":"hi there","citations":["doc.pdf p.3"],"suggestions":["and then?"]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	resp, err := client.Ask("abc123", "hello")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if resp.Response != "hi there" {
		t.Errorf("response = %q, want %q", resp.Response, "hi there")
	}
	if len(resp.Citations) != 1 || resp.Citations[0] != "doc.pdf p.3" {
		t.Errorf("citations = %v", resp.Citations)
	}
	if len(resp.Suggestions) != 1 || resp.Suggestions[0] != "and then?" {
		t.Errorf("suggestions = %v", resp.Suggestions)
	}
}

func TestAskServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"message":"index unavailable"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Ask("abc123", "hello")
	if err == nil {
		t.Fatal("Ask() expected error, got nil")
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error is %T, want *Error", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", apiErr.StatusCode, http.StatusBadGateway)
	}
	if apiErr.Message != "index unavailable" {
		t.Errorf("message = %q, want %q", apiErr.Message, "index unavailable")
	}
}

func TestAskErrorWithoutMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("plain text failure"))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Ask("", "hello")

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error is %T, want *Error", err)
	}
	if apiErr.Message != "" {
		t.Errorf("message = %q, want empty", apiErr.Message)
	}
	if !strings.Contains(apiErr.Error(), "500") {
		t.Errorf("Error() = %q, want status in text", apiErr.Error())
	}
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "suggestions returned",
			body: `{"suggestions":["what is X?","how does Y work?"]}`,
			want: []string{"what is X?", "how does Y work?"},
		},
		{
			name: "field absent",
			body: `{}`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/ask" {
					t.Errorf("path = %q, want /ask", r.URL.Path)
				}
				if got := r.URL.Query().Get("query"); got != "part" {
					t.Errorf("query = %q, want %q", got, "part")
				}
				if got := r.Header.Get("User-ID"); got != "u1" {
					t.Errorf("User-ID header = %q, want %q", got, "u1")
				}
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, time.Second)
			got, err := client.Suggest("u1", "part")
			if err != nil {
				t.Fatalf("Suggest() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Suggest() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("suggestion[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestUpload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/upload" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parsing multipart form: %v", err)
			return
		}
		f, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing file field: %v", err)
			return
		}
		defer f.Close()
		if header.Filename != "notes.txt" {
			t.Errorf("filename = %q, want %q", header.Filename, "notes.txt")
		}
		content, _ := io.ReadAll(f)
		if string(content) != "file body" {
			t.Errorf("content = %q, want %q", content, "file body")
		}

		w.Write([]byte(`{"message":"indexed"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	message, err := client.Upload("u1", "notes.txt", strings.NewReader("file body"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if message != "indexed" {
		t.Errorf("message = %q, want %q", message, "indexed")
	}
}

func TestGetFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/files/notes.txt" {
			t.Errorf("path = %q, want /files/notes.txt", r.URL.Path)
		}
		w.Write([]byte("file contents"))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	data, err := client.GetFile("u1", "notes.txt")
	if err != nil {
		t.Fatalf("GetFile() error = %v", err)
	}
	if string(data) != "file contents" {
		t.Errorf("data = %q, want %q", data, "file contents")
	}
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient("", 0)
	if client.BaseURL() != DefaultBaseURL {
		t.Errorf("base URL = %q, want %q", client.BaseURL(), DefaultBaseURL)
	}

	client = NewClient("http://example.com/", time.Second)
	if client.BaseURL() != "http://example.com" {
		t.Errorf("base URL = %q, trailing slash should be trimmed", client.BaseURL())
	}
}

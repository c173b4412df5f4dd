package figma

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
)

func TestExtractFileKey(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "valid /file/ URL",
			url:  "https://www.figma.com/file/ABC123XYZ/Design-Name",
			want: "ABC123XYZ",
		},
		{
			name: "valid /design/ URL",
			url:  "https://www.figma.com/design/ABC123XYZ/Design-Name",
			want: "ABC123XYZ",
		},
		{
			name: "URL with node-id parameter",
			url:  "https://www.figma.com/design/4gkABR5gEZnIvlCaXmA4KI/Makis-s-file?node-id=11933-305884",
			want: "4gkABR5gEZnIvlCaXmA4KI",
		},
		{
			name: "URL without www subdomain",
			url:  "https://figma.com/file/ABC123XYZ/Design-Name",
			want: "ABC123XYZ",
		},
		{
			name: "URL with http protocol",
			url:  "http://www.figma.com/file/ABC123XYZ/Design-Name",
			want: "ABC123XYZ",
		},
		{
			name: "URL with trailing slash",
			url:  "https://www.figma.com/file/ABC123XYZ/",
			want: "ABC123XYZ",
		},
		{
			name: "file key with mixed alphanumeric",
			url:  "https://www.figma.com/file/aB1cD2eF3gH4iJ5kL6/MyDesign",
			want: "aB1cD2eF3gH4iJ5kL6",
		},
		{
			name:    "missing file key",
			url:     "https://www.figma.com/file/",
			wantErr: true,
		},
		{
			name:    "wrong domain",
			url:     "https://www.example.com/file/ABC123XYZ",
			wantErr: true,
		},
		{
			name:    "wrong path",
			url:     "https://www.figma.com/dashboard/ABC123XYZ",
			wantErr: true,
		},
		{
			name:    "prefixed domain is rejected",
			url:     "https://evilfigma.com/file/ABC123XYZ",
			wantErr: true,
		},
		{
			name:    "empty URL",
			url:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractFileKey(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ExtractFileKey() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ExtractFileKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractNodeIDs(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want []string
	}{
		{
			name: "single node-id with colon",
			url:  "https://www.figma.com/file/ABC123/Design?node-id=123:456",
			want: []string{"123:456"},
		},
		{
			name: "single node-id with dash",
			url:  "https://www.figma.com/design/4gkABR5gEZnIvlCaXmA4KI/Makis-s-file?node-id=11933-305884",
			want: []string{"11933:305884"},
		},
		{
			name: "node-id with additional parameters",
			url:  "https://www.figma.com/design/4gkABR5gEZnIvlCaXmA4KI/Makis-s-file?node-id=11933-305884&t=ObvUckUHZc8tSjeT-1",
			want: []string{"11933:305884"},
		},
		{
			name: "multiple node-ids with colons",
			url:  "https://www.figma.com/file/ABC123/Design?node-id=123:456,789:012",
			want: []string{"123:456", "789:012"},
		},
		{
			name: "multiple node-ids with dashes",
			url:  "https://www.figma.com/file/ABC123/Design?node-id=123-456,789-012",
			want: []string{"123:456", "789:012"},
		},
		{
			name: "mixed id formats",
			url:  "https://www.figma.com/file/ABC123/Design?node-id=123:456,789-012",
			want: []string{"123:456", "789:012"},
		},
		{
			name: "hash fragment format",
			url:  "https://www.figma.com/file/ABC123/Design#123:456",
			want: []string{"123:456"},
		},
		{
			name: "hash fragment with multiple nodes",
			url:  "https://www.figma.com/file/ABC123/Design#123:456,789:012",
			want: []string{"123:456", "789:012"},
		},
		{
			name: "path format",
			url:  "https://www.figma.com/file/ABC123/Design/nodes/123:456",
			want: []string{"123:456"},
		},
		{
			name: "path format with multiple nodes",
			url:  "https://www.figma.com/file/ABC123/Design/nodes/123:456,789:012",
			want: []string{"123:456", "789:012"},
		},
		{
			name: "no node-ids in URL",
			url:  "https://www.figma.com/file/ABC123/Design",
			want: []string{},
		},
		{
			name: "ids with surrounding spaces",
			url:  "https://www.figma.com/file/ABC123/Design?node-id=123:456, 789:012",
			want: []string{"123:456", "789:012"},
		},
		{
			name: "duplicate ids collapse",
			url:  "https://www.figma.com/file/ABC123/Design?node-id=123:456,123:456,789:012",
			want: []string{"123:456", "789:012"},
		},
		{
			name: "empty node-id parameter",
			url:  "https://www.figma.com/file/ABC123/Design?node-id=",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractNodeIDs(tt.url)
			if err != nil {
				t.Fatalf("ExtractNodeIDs() error = %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("ExtractNodeIDs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeduplicateNodeIDs(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want []string
	}{
		{
			name: "no duplicates",
			ids:  []string{"123:456", "789:012", "345:678"},
			want: []string{"123:456", "789:012", "345:678"},
		},
		{
			name: "duplicates keep first occurrence order",
			ids:  []string{"789:012", "123:456", "789:012", "345:678", "123:456"},
			want: []string{"789:012", "123:456", "345:678"},
		},
		{
			name: "all duplicates",
			ids:  []string{"123:456", "123:456", "123:456"},
			want: []string{"123:456"},
		},
		{
			name: "empty slice",
			ids:  []string{},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := deduplicateNodeIDs(tt.ids); !slices.Equal(got, tt.want) {
				t.Errorf("deduplicateNodeIDs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func testClient(srvURL string) *Client {
	c := NewClient("test-token")
	c.baseURL = srvURL
	return c
}

func TestGetFileNodes(t *testing.T) {
	var gotPath, gotToken, gotIDs string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.Header.Get("X-Figma-Token")
		gotIDs = r.URL.Query().Get("ids")
		fmt.Fprint(w, `{
			"name": "Design File",
			"nodes": {
				"1:2": {"document": {"id": "1:2", "name": "Card", "type": "FRAME"}}
			}
		}`)
	}))
	defer srv.Close()

	resp, err := testClient(srv.URL).GetFileNodes("ABC123", []string{"1:2", "3:4"})
	if err != nil {
		t.Fatalf("GetFileNodes() error = %v", err)
	}

	if gotPath != "/files/ABC123/nodes" {
		t.Errorf("request path = %q, want /files/ABC123/nodes", gotPath)
	}
	if gotToken != "test-token" {
		t.Errorf("X-Figma-Token = %q, want test-token", gotToken)
	}
	if gotIDs != "1:2,3:4" {
		t.Errorf("ids parameter = %q, want 1:2,3:4", gotIDs)
	}
	if resp.Name != "Design File" {
		t.Errorf("resp.Name = %q, want Design File", resp.Name)
	}
	if node, ok := resp.Nodes["1:2"]; !ok || node.Document.Name != "Card" {
		t.Errorf("node 1:2 not decoded: %+v", resp.Nodes)
	}
}

func TestGetFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/files/KEY42" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{
			"name": "My Designs",
			"document": {
				"id": "0:0",
				"name": "Document",
				"type": "DOCUMENT",
				"children": [{"id": "0:1", "name": "Page 1", "type": "CANVAS"}]
			}
		}`)
	}))
	defer srv.Close()

	resp, err := testClient(srv.URL).GetFile("KEY42")
	if err != nil {
		t.Fatalf("GetFile() error = %v", err)
	}
	if resp.Name != "My Designs" {
		t.Errorf("resp.Name = %q, want My Designs", resp.Name)
	}
	if len(resp.Document.Children) != 1 || resp.Document.Children[0].Type != "CANVAS" {
		t.Errorf("document tree not decoded: %+v", resp.Document)
	}
}

func TestGetFileDoesNotRetryClientErrors(t *testing.T) {
	var calls int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"err": "invalid token"}`)
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).GetFile("KEY42"); err == nil {
		t.Fatal("GetFile() expected error for 403 response")
	}
	if calls != 1 {
		t.Errorf("server was called %d times, want 1 (4xx must not retry)", calls)
	}
}

func TestGetFileRetriesRateLimit(t *testing.T) {
	if testing.Short() {
		t.Skip("retry backoff sleeps; skipping in short mode")
	}

	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"name": "Recovered"}`)
	}))
	defer srv.Close()

	resp, err := testClient(srv.URL).GetFile("KEY42")
	if err != nil {
		t.Fatalf("GetFile() error = %v", err)
	}
	if calls != 2 {
		t.Errorf("server was called %d times, want 2", calls)
	}
	if resp.Name != "Recovered" {
		t.Errorf("resp.Name = %q, want Recovered", resp.Name)
	}
}

package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
)

func uploadFile(t *testing.T, name, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestAdminUploadAndStats(t *testing.T) {
	r := testRouter(t, nil, nil)

	body, contentType := uploadFile(t, "handbook.txt", "Employees receive 15 vacation days per year.")
	req := httptest.NewRequest(http.MethodPost, "/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("upload status = %d, body = %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/stats", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("stats status = %d", w.Code)
	}
	var stats map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats["documents"].(float64) != 1 {
		t.Errorf("documents = %v, want 1", stats["documents"])
	}
	if stats["chunks"] != stats["index_size"] {
		t.Errorf("chunks %v != index_size %v", stats["chunks"], stats["index_size"])
	}

	// The uploaded document is immediately searchable.
	cw := postChat(t, r, `{"question":"how many vacation days do employees get?"}`)
	if cw.Code != http.StatusOK {
		t.Fatalf("chat after upload = %d", cw.Code)
	}
}

func TestAdminUploadRejectsUnsupportedType(t *testing.T) {
	r := testRouter(t, nil, nil)

	body, contentType := uploadFile(t, "handbook.docx", "binary-ish")
	req := httptest.NewRequest(http.MethodPost, "/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestAdminUploadEmptyDocument(t *testing.T) {
	r := testRouter(t, nil, nil)

	body, contentType := uploadFile(t, "empty.txt", "   ")
	req := httptest.NewRequest(http.MethodPost, "/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body = %s", w.Code, w.Body.String())
	}
}

func TestAdminListDocuments(t *testing.T) {
	r := testRouter(t, map[string][]string{
		"handbook.pdf": {"Employees receive 15 vacation days per year."},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/documents", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Documents []struct {
			SourceFile string `json:"source_file"`
			ChunkCount int    `json:"chunk_count"`
		} `json:"documents"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Documents) != 1 || resp.Documents[0].SourceFile != "handbook.pdf" {
		t.Errorf("unexpected documents: %+v", resp.Documents)
	}
}

func TestAdminReindex(t *testing.T) {
	r := testRouter(t, map[string][]string{
		"handbook.pdf": {"Employees receive 15 vacation days per year."},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/reindex", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp map[string]int
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["indexed"] != 1 {
		t.Errorf("indexed = %d, want 1", resp["indexed"])
	}
}

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
)

// helper to perform requests with auth token
func performRequest(r http.Handler, method, path string, body io.Reader, token string, contentType string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func setupTestServer(t *testing.T) *gin.Engine {
	// integration tests are opt-in. Set DB_DSN_TEST=1 and DB_DSN to run them.
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	gin.SetMode(gin.TestMode)
	jwtSecret = []byte("test-secret")
	initDB()
	tmp := t.TempDir()
	_ = os.Setenv("UPLOAD_BASE", tmp)
	r := gin.Default()
	setupRoutes(r)
	return r
}

// cardTranscript mirrors a player-card OCR result; uploaded as .txt it skips
// the Tesseract dependency while exercising the whole upload pipeline.
const cardTranscript = `DUST-MAKER %4
l0 | SPACE CADET
;; | ENEMY KILLS 48,731
TERMINID KILLS 41,962
AUTOMATON KILLS 6,769
FRIENDLY KILLS 61
GRENADE KILLS 2,672
MELEE KILLS 183
EAGLE KILLS 3,511
DEATHS 480
SHOTS FIRED 286,375
SHOTS HIT 28,494,642
ORBITALS USED 1,226
DEFENSIVE STRATAGEMS USED 634
EAGLE STRATAGEMS USED 1,738
SUPPLY STRATAGEMS USED 1,310
SUCCESSFUL EXTRACTIONS 902
OBJECTIVES COMPLETED 3,812
MISSIONS PLAYED 1,041
MISSIONS WON 939
IN-MISSION TIME 1093:15:44
SAMPLES COLLECTED 41,307
TOTAL XP 5,073,982
`

func TestFullFlow(t *testing.T) {
	r := setupTestServer(t)

	// 1. Register + login
	regBody, _ := json.Marshal(map[string]string{"username": "diver1", "password": "pass123"})
	resp := performRequest(r, http.MethodPost, "/register", bytes.NewBuffer(regBody), "", "application/json")
	if resp.Code != 200 && resp.Code != 409 {
		t.Fatalf("register failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodPost, "/login", bytes.NewBuffer(regBody), "", "application/json")
	if resp.Code != 200 {
		t.Fatalf("login failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var loginResp map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &loginResp)
	token, _ := loginResp["token"].(string)
	if token == "" {
		t.Fatalf("empty token in login response: %+v", loginResp)
	}

	// 2. Create profile
	profBody, _ := json.Marshal(map[string]string{"player_name": "DUST-MAKER", "platform": "pc"})
	resp = performRequest(r, http.MethodPost, "/profile", bytes.NewBuffer(profBody), token, "application/json")
	if resp.Code != 200 {
		t.Fatalf("create profile failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 3. Upload a transcription (multipart)
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("screenshots", "card.txt")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := fw.Write([]byte(cardTranscript)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	_ = mw.Close()
	resp = performRequest(r, http.MethodPost, "/screenshots", &buf, token, mw.FormDataContentType())
	if resp.Code != 200 {
		t.Fatalf("upload failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var upResp map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &upResp)
	if n, _ := upResp["stats_found"].(float64); int(n) != 21 {
		t.Fatalf("expected 21 stats recovered, got %v", upResp["stats_found"])
	}

	// 4. Latest snapshot carries the parsed values, zero-defaulted elsewhere
	resp = performRequest(r, http.MethodGet, "/snapshots/latest", nil, token, "")
	if resp.Code != 200 {
		t.Fatalf("latest snapshot failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var snap map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &snap)
	if v, _ := snap["TotalXP"].(float64); int64(v) != 5073982 {
		t.Fatalf("snapshot total xp = %v, want 5073982", snap["TotalXP"])
	}
	if v, _ := snap["TotalStratagemsUsed"].(float64); int64(v) != 0 {
		t.Fatalf("career-only stat should default to zero, got %v", snap["TotalStratagemsUsed"])
	}
}

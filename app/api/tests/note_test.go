package tests

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/ribgsilva/meditate/app/api/handlers"
	"github.com/ribgsilva/meditate/business/v1/note"
	"github.com/ribgsilva/meditate/business/v1/session"
	"github.com/ribgsilva/meditate/persistence/v1/schema"
	"github.com/ribgsilva/meditate/platform/database"
	"github.com/ribgsilva/meditate/platform/env"
	"github.com/ribgsilva/meditate/platform/logger"
	"github.com/ribgsilva/meditate/platform/notify"
	"github.com/ribgsilva/meditate/sys"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type NoteTests struct {
	app http.Handler
}

func TestNote(t *testing.T) {
	log, err := logger.New("Note-API-Tests")
	if err != nil {
		t.Fatal(err)
	}
	// =======================================================================================================
	// Mocks

	// miniredis
	s := miniredis.RunT(t)

	// =======================================================================================================
	// Setup configs
	sys.Configs.Database.Driver = database.DriverSQLite
	sys.Configs.Database.ConnectionURL = filepath.Join(t.TempDir(), "notes.db")
	sys.Configs.Database.PingTimeout = env.DurationDefault(log, "DATABASE_PING_TIMEOUT", "2s")
	sys.Configs.Database.OperationTimeout = env.DurationDefault(log, "DATABASE_OPERATION_TIMEOUT", "5s")
	sys.Configs.Redis.ConnectionURL = s.Addr()
	sys.Configs.Redis.Channel = notify.DefaultChannel
	sys.Configs.Redis.PingTimeout = env.DurationDefault(log, "REDIS_PING_TIMEOUT", "2s")
	sys.Configs.Redis.OperationTimeout = env.DurationDefault(log, "REDIS_OPERATION_TIMEOUT", "2s")

	// =======================================================================================================
	// Setup resources

	// logger
	sys.R.Log = log

	// database
	db, err := database.Open(context.Background(), sys.Configs.Database.Driver, sys.Configs.Database.ConnectionURL, sys.Configs.Database.PingTimeout)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = db.Close()
	}()
	sys.R.Database = db

	// redis
	rdb := redis.NewClient(&redis.Options{Addr: sys.Configs.Redis.ConnectionURL})
	rdsCtx, rdsCancel := context.WithTimeout(context.Background(), sys.Configs.Redis.PingTimeout)
	defer rdsCancel()
	if err := rdb.Ping(rdsCtx).Err(); err != nil {
		t.Fatalf("could not connect to redis: %s", err)
	}
	defer func() {
		_ = rdb.Close()
	}()
	sys.R.Redis = rdb
	sys.R.Notifier = notify.NewRedis(rdb, sys.Configs.Redis.Channel, log)

	// =======================================================================================================
	// Database setup

	if err := schema.Create(context.Background()); err != nil {
		t.Fatalf("sql.Exec: Error: %s\n", err)
	}
	defer schema.Drop(context.Background())

	// =======================================================================================================
	// Setup session and router
	sess, err := session.New(context.Background(), note.Store{}, session.WithLogger(log))
	if err != nil {
		t.Fatal(err)
	}
	defer sess.Close()

	gin.SetMode(gin.TestMode)
	engine := gin.New()

	handlers.MapDefaults(engine)
	handlers.MapApi(engine, sess)

	tests := NoteTests{
		engine,
	}

	// =======================================================================================================
	// Run tests

	tests.healthcheck200(t)
	tests.tags200(t)
	tests.createNote400(t)
	tests.deleteNote400(t)
	tests.listEmpty200(t)

	first := tests.createAndWait(t, "hello", "essay", 1)
	if first.Id == 0 {
		t.Fatalf("Test createAndWait: Should have received an id for the note: %v", first)
	}
	second := tests.createAndWait(t, "later", "", 2)
	if second.Tag != note.DefaultTag {
		t.Fatalf("Test createAndWait: Should have received the default tag: %v", second)
	}
	if second.Id == first.Id {
		t.Fatalf("Test createAndWait: Should have received a fresh id: %v %v", first, second)
	}

	notes := tests.list(t)
	if notes[0].Id != second.Id || notes[1].Id != first.Id {
		t.Fatalf("Test list: Should have received the newest note first: %v", notes)
	}

	tests.deleteAndWait(t, first.Id, 1)
	tests.deleteAndWait(t, first.Id, 1)

	tests.stream(t, engine, second.Id)
}

func (nt *NoteTests) do(method, target, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	nt.app.ServeHTTP(w, r)
	return w
}

func (nt *NoteTests) healthcheck200(t *testing.T) {
	w := nt.do(http.MethodGet, "/v1/healthcheck", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Test healthcheck200: Should receive a status code of 200 for the response : %v", w.Code)
	}
}

func (nt *NoteTests) tags200(t *testing.T) {
	w := nt.do(http.MethodGet, "/v1/tags", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Test tags200: Should receive a status code of 200 for the response : %v", w.Code)
	}
	var tags []string
	if err := json.NewDecoder(w.Body).Decode(&tags); err != nil {
		t.Fatalf("Test tags200: Should be able to unmarshal the response : %v", err)
	}
	if len(tags) != 3 || tags[0] != "random thoughts" || tags[1] != "reflection" || tags[2] != "essay" {
		t.Fatalf("Test tags200: Should have received the three tags: %v", tags)
	}
}

func (nt *NoteTests) createNote400(t *testing.T) {
	for _, body := range []string{`{"content": "   ", "tag": "essay"}`, `{"content": "x", "tag": "poem"}`, `not json`} {
		w := nt.do(http.MethodPost, "/v1/notes", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("Test createNote400: Should receive a status code of 400 for %s : %v", body, w.Code)
		}
	}
}

func (nt *NoteTests) deleteNote400(t *testing.T) {
	for _, id := range []string{"abc", "0", "-1"} {
		w := nt.do(http.MethodDelete, "/v1/notes/"+id, "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("Test deleteNote400: Should receive a status code of 400 for id %s : %v", id, w.Code)
		}
	}
}

func (nt *NoteTests) list(t *testing.T) []note.Note {
	w := nt.do(http.MethodGet, "/v1/notes", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Test list: Should receive a status code of 200 for the response : %v", w.Code)
	}
	var notes []note.Note
	if err := json.NewDecoder(w.Body).Decode(&notes); err != nil {
		t.Fatalf("Test list: Should be able to unmarshal the response : %v", err)
	}
	return notes
}

func (nt *NoteTests) listEmpty200(t *testing.T) {
	w := nt.do(http.MethodGet, "/v1/notes", "")
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("Test listEmpty200: Should have received an empty list: %s", w.Body.String())
	}
}

// waitFor polls the list until it has size notes
func (nt *NoteTests) waitFor(t *testing.T, size int) []note.Note {
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if notes := nt.list(t); len(notes) == size {
			return notes
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("Test waitFor: Should have %d notes in the list: %v", size, nt.list(t))
	return nil
}

func (nt *NoteTests) createAndWait(t *testing.T, content, tag string, size int) note.Note {
	// keeps the millisecond timestamps apart
	time.Sleep(2 * time.Millisecond)

	w := nt.do(http.MethodPost, "/v1/notes", fmt.Sprintf(`{"content": %q, "tag": %q}`, content, tag))
	if w.Code != http.StatusAccepted {
		t.Fatalf("Test createAndWait: Should receive a status code of 202 for the response : %v", w.Code)
	}

	notes := nt.waitFor(t, size)
	if notes[0].Content != content {
		t.Fatalf("Test createAndWait: Should have received %q as content of the newest note: %v", content, notes)
	}
	return notes[0]
}

func (nt *NoteTests) deleteAndWait(t *testing.T, id uint64, size int) {
	w := nt.do(http.MethodDelete, fmt.Sprintf("/v1/notes/%d", id), "")
	if w.Code != http.StatusAccepted {
		t.Fatalf("Test deleteAndWait: Should receive a status code of 202 for the response : %v", w.Code)
	}
	for _, n := range nt.waitFor(t, size) {
		if n.Id == id {
			t.Fatalf("Test deleteAndWait: Should not find note %d anymore", id)
		}
	}
}

func (nt *NoteTests) stream(t *testing.T, engine *gin.Engine, want uint64) {
	srv := httptest.NewServer(engine)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/v1/notes/stream", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(r)
	if err != nil {
		t.Fatalf("Test stream: Should connect to the stream: %s", err)
	}
	defer resp.Body.Close()

	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/event-stream") {
		t.Fatalf("Test stream: Should receive an event stream: %s", resp.Header.Get("Content-Type"))
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Bytes()
		if !bytes.HasPrefix(line, []byte("data:")) {
			continue
		}
		var notes []note.Note
		if err := json.Unmarshal(bytes.TrimPrefix(line, []byte("data:")), &notes); err != nil {
			t.Fatalf("Test stream: Should be able to unmarshal the event : %v", err)
		}
		if len(notes) != 1 || notes[0].Id != want {
			t.Fatalf("Test stream: Should have received the current list: %v", notes)
		}
		return
	}
	t.Fatalf("Test stream: Should have received an event: %v", scanner.Err())
}

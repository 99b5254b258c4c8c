package tests

import (
	"context"
	"encoding/json"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/ribgsilva/meditate/app/messaging/consumers/v1/notes"
	"github.com/ribgsilva/meditate/business/v1/note"
	"github.com/ribgsilva/meditate/business/v1/session"
	"github.com/ribgsilva/meditate/persistence/v1/schema"
	"github.com/ribgsilva/meditate/platform/database"
	"github.com/ribgsilva/meditate/platform/env"
	"github.com/ribgsilva/meditate/platform/logger"
	"github.com/ribgsilva/meditate/platform/notify"
	"github.com/ribgsilva/meditate/sys"
	"gocloud.dev/pubsub"
	"gocloud.dev/pubsub/mempubsub"
	"path/filepath"
	"testing"
	"time"
)

type NoteTests struct {
	topic   *pubsub.Topic
	session *session.Session
}

func TestNote(t *testing.T) {
	log, err := logger.New("Note-Messaging-Tests")
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
	sys.Configs.Redis.PingTimeout = env.DurationDefault(log, "REDIS_PING_TIMEOUT", "2s")
	sys.Configs.Redis.OperationTimeout = env.DurationDefault(log, "REDIS_OPERATION_TIMEOUT", "2s")
	sys.Configs.Messaging.ShutdownTimeout = env.DurationDefault(log, "MESSAGING_SHUTDOWN_TIMEOUT", "10s")

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
	defer func() {
		_ = rdb.Close()
	}()
	sys.R.Redis = rdb
	sys.R.Notifier = notify.NewRedis(rdb, notify.DefaultChannel, log)

	// =======================================================================================================
	// Database setup

	if err := schema.Create(context.Background()); err != nil {
		t.Fatalf("sql.Exec: Error: %s\n", err)
	}
	defer schema.Drop(context.Background())

	// a session in the same role as the one serving the api
	sess, err := session.New(context.Background(), note.Store{}, session.WithLogger(log))
	if err != nil {
		t.Fatal(err)
	}
	defer sess.Close()

	// =======================================================================================================
	// Messaging configuration

	topic := mempubsub.NewTopic()
	defer func() {
		_ = topic.Shutdown(context.Background())
	}()
	subscription := mempubsub.NewSubscription(topic, 1*time.Second)

	defer func() {
		stdCtx, stdCancel := context.WithTimeout(context.Background(), sys.Configs.Messaging.ShutdownTimeout)
		defer stdCancel()

		_ = subscription.Shutdown(stdCtx)
	}()

	withCancel, cancelFunc := context.WithCancel(context.Background())

	consumed := make(chan error, 1)
	go func() {
		consumed <- notes.Consume(withCancel, subscription, 2)
	}()

	// =======================================================================================================
	// Run tests

	noteTests := NoteTests{topic: topic, session: sess}

	noteTests.testCrud(t)

	cancelFunc()
	select {
	case err := <-consumed:
		if err != nil {
			t.Fatal("listener error: ", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("listener did not stop")
	}
}

func (nt *NoteTests) testCrud(t *testing.T) {
	created := nt.testInsertSuccess(t)
	nt.testUnknownEventIgnored(t)
	nt.testDeleteSuccess(t, created)
}

func (nt *NoteTests) send(t *testing.T, event any) {
	marshal, err := json.Marshal(event)
	if err != nil {
		t.Fatal("failed to parse request body")
	}

	if err := nt.topic.Send(context.Background(), &pubsub.Message{
		Body: marshal,
	}); err != nil {
		t.Fatal("failed to post message to topic: ", err)
	}
}

func (nt *NoteTests) waitFor(t *testing.T, size int) []note.Note {
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if found := nt.session.Notes(); len(found) == size {
			return found
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("should have %d notes in the session: %v", size, nt.session.Notes())
	return nil
}

func (nt *NoteTests) testInsertSuccess(t *testing.T) note.Note {
	nt.send(t, note.Event{
		Type: note.EventCreate,
		Data: note.NewNote{
			Content: "other text",
			Tag:     note.TagReflection,
		},
	})

	found := nt.waitFor(t, 1)[0]

	if found.Id == 0 {
		t.Fatalf("Test testInsertSuccess: should have received an id in the response: %v", found)
	}

	if found.Content != "other text" {
		t.Fatalf("Test testInsertSuccess: should have received \"other text\" as content in the response: %v", found)
	}

	if found.Tag != note.TagReflection {
		t.Fatalf("Test testInsertSuccess: should have received \"reflection\" as tag in the response: %v", found)
	}

	if found.Timestamp == 0 {
		t.Fatalf("Test testInsertSuccess: should have received a timestamp in the response: %v", found)
	}
	return found
}

func (nt *NoteTests) testUnknownEventIgnored(t *testing.T) {
	nt.send(t, note.Event{Type: "update", Data: note.Removal{Id: 1}})
	if err := nt.topic.Send(context.Background(), &pubsub.Message{Body: []byte("not json")}); err != nil {
		t.Fatal("failed to post message to topic: ", err)
	}

	time.Sleep(100 * time.Millisecond)
	if found := nt.session.Notes(); len(found) != 1 {
		t.Fatalf("Test testUnknownEventIgnored: should still have one note: %v", found)
	}
}

func (nt *NoteTests) testDeleteSuccess(t *testing.T, created note.Note) {
	nt.send(t, note.Event{Type: note.EventDelete, Data: note.Removal{Id: created.Id}})
	nt.waitFor(t, 0)

	// deleting again is a no-op
	nt.send(t, note.Event{Type: note.EventDelete, Data: note.Removal{Id: created.Id}})
	time.Sleep(100 * time.Millisecond)
	if found := nt.session.Notes(); len(found) != 0 {
		t.Fatalf("Test testDeleteSuccess: should have no notes: %v", found)
	}
}

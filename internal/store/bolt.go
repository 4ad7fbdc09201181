package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/lojasmm/convostarter/internal/catalog"
)

var (
	promptsBucket = []byte("prompts")
	metaBucket    = []byte("meta")
	seededKey     = []byte("seeded_at")
)

// PromptRecord is the stored value for one (language, scenario) pair.
type PromptRecord struct {
	Language  string    `json:"language"`
	Scenario  string    `json:"scenario"`
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Store interface {
	Prompt(languageID, scenarioID string) (string, bool, error)
	SavePrompt(languageID, scenarioID, text string) error
	DeletePrompt(languageID, scenarioID string) error
	Table() (catalog.PromptTable, error)
	Close() error
}

var _ Store = (*BoltStore)(nil)

// BoltStore keeps an editable copy of the prompt table. Each language is a
// nested bucket under "prompts", keyed by scenario id.
type BoltStore struct {
	db *bolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(promptsBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(metaBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating prompt buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Seed writes every prompt in t, but only the first time the store is seeded,
// so later operator edits survive restarts. It reports whether it wrote.
func (s *BoltStore) Seed(t catalog.PromptTable) (bool, error) {
	seeded := false
	err := s.db.Update(func(tx *bolt.Tx) error {
		meta := tx.Bucket(metaBucket)
		if meta.Get(seededKey) != nil {
			return nil
		}
		now := time.Now().UTC()
		for lang, byScenario := range t {
			for sc, text := range byScenario {
				if err := putPrompt(tx, PromptRecord{Language: lang, Scenario: sc, Text: text, UpdatedAt: now}); err != nil {
					return err
				}
			}
		}
		seeded = true
		return meta.Put(seededKey, []byte(now.Format(time.RFC3339)))
	})
	if err != nil {
		return false, fmt.Errorf("seeding prompts: %w", err)
	}
	return seeded, nil
}

func (s *BoltStore) Prompt(languageID, scenarioID string) (string, bool, error) {
	var rec PromptRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		lang := tx.Bucket(promptsBucket).Bucket([]byte(languageID))
		if lang == nil {
			return nil
		}
		v := lang.Get([]byte(scenarioID))
		if v == nil {
			return nil
		}
		return json.Unmarshal(v, &rec)
	})
	if err != nil {
		return "", false, fmt.Errorf("reading prompt %s/%s: %w", languageID, scenarioID, err)
	}
	if rec.Text == "" {
		return "", false, nil
	}
	return rec.Text, true, nil
}

func (s *BoltStore) SavePrompt(languageID, scenarioID, text string) error {
	if languageID == "" || scenarioID == "" {
		return errors.New("language and scenario are required")
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return putPrompt(tx, PromptRecord{
			Language:  languageID,
			Scenario:  scenarioID,
			Text:      text,
			UpdatedAt: time.Now().UTC(),
		})
	})
}

func (s *BoltStore) DeletePrompt(languageID, scenarioID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		lang := tx.Bucket(promptsBucket).Bucket([]byte(languageID))
		if lang == nil {
			return nil
		}
		return lang.Delete([]byte(scenarioID))
	})
}

// Table returns the stored prompts as a PromptTable.
func (s *BoltStore) Table() (catalog.PromptTable, error) {
	t := catalog.PromptTable{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(promptsBucket).ForEachBucket(func(lang []byte) error {
			inner := map[string]string{}
			err := tx.Bucket(promptsBucket).Bucket(lang).ForEach(func(k, v []byte) error {
				var rec PromptRecord
				if err := json.Unmarshal(v, &rec); err != nil {
					return err
				}
				inner[string(k)] = rec.Text
				return nil
			})
			t[string(lang)] = inner
			return err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("reading prompt table: %w", err)
	}
	return t, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func putPrompt(tx *bolt.Tx, rec PromptRecord) error {
	lang, err := tx.Bucket(promptsBucket).CreateBucketIfNotExists([]byte(rec.Language))
	if err != nil {
		return err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return lang.Put([]byte(rec.Scenario), data)
}

package pipeline

import (
	"deployer/internal/model"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterPath(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "script.js")

	inCh := make(chan model.ChangeEvent, 4)
	inCh <- model.ChangeEvent{Type: model.EventModify, Path: target}
	inCh <- model.ChangeEvent{Type: model.EventModify, Path: filepath.Join(dir, "other.js")}
	inCh <- model.ChangeEvent{Type: model.EventError, Err: errors.New("overflow")}
	inCh <- model.ChangeEvent{Type: model.EventCreate, Path: filepath.Join(dir, ".", "script.js")}
	close(inCh)

	var got []model.ChangeEvent
	for event := range FilterPath(inCh, nil, target) {
		got = append(got, event)
	}

	if assert.Len(t, got, 3) {
		assert.Equal(t, model.EventModify, got[0].Type)
		assert.Equal(t, model.EventError, got[1].Type)
		assert.Equal(t, model.EventCreate, got[2].Type)
	}
}

func TestFilterPathMultiple(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "link", "script.js")
	resolved := filepath.Join(dir, "real", "script.js")

	inCh := make(chan model.ChangeEvent, 3)
	inCh <- model.ChangeEvent{Type: model.EventModify, Path: resolved}
	inCh <- model.ChangeEvent{Type: model.EventCreate, Path: link}
	inCh <- model.ChangeEvent{Type: model.EventModify, Path: filepath.Join(dir, "real", "other.js")}
	close(inCh)

	var got []string
	for event := range FilterPath(inCh, nil, link, resolved) {
		got = append(got, event.Path)
	}

	assert.Equal(t, []string{resolved, link}, got)
}


package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/eabrosimov/fstr-pereval-api/internal/model"
)

// MemStore is an in-memory Store implementation used by tests and
// local development.  It mirrors the SQL gateway semantics: fetches of
// absent rows return sql.ErrNoRows, WithinTx is atomic (state is
// snapshotted and restored when fn fails), and IDs auto-increment per
// entity.
type MemStore struct {
	mu          sync.Mutex
	users       map[int64]model.User
	userIDs     map[string]int64 // email -> user id
	coords      map[int64]model.Coords
	perevals    map[int64]model.Pereval
	images      map[int64][]model.ImageInput
	nextUser    int64
	nextCoords  int64
	nextPereval int64

	// ImageWriteErr, when set, makes CreateImages fail.  Tests use it
	// to exercise the rollback path of the submission transaction.
	ImageWriteErr error
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		users:    map[int64]model.User{},
		userIDs:  map[string]int64{},
		coords:   map[int64]model.Coords{},
		perevals: map[int64]model.Pereval{},
		images:   map[int64][]model.ImageInput{},
	}
}

// WithinTx snapshots the store, runs fn and restores the snapshot when
// fn returns an error, mirroring a rolled-back transaction.
func (m *MemStore) WithinTx(_ context.Context, fn func(g Gateway) error) error {
	m.mu.Lock()
	snap := m.snapshot()
	m.mu.Unlock()
	if err := fn(m); err != nil {
		m.mu.Lock()
		m.restore(snap)
		m.mu.Unlock()
		return err
	}
	return nil
}

type memSnapshot struct {
	users       map[int64]model.User
	userIDs     map[string]int64
	coords      map[int64]model.Coords
	perevals    map[int64]model.Pereval
	images      map[int64][]model.ImageInput
	nextUser    int64
	nextCoords  int64
	nextPereval int64
}

func (m *MemStore) snapshot() memSnapshot {
	s := memSnapshot{
		users:       make(map[int64]model.User, len(m.users)),
		userIDs:     make(map[string]int64, len(m.userIDs)),
		coords:      make(map[int64]model.Coords, len(m.coords)),
		perevals:    make(map[int64]model.Pereval, len(m.perevals)),
		images:      make(map[int64][]model.ImageInput, len(m.images)),
		nextUser:    m.nextUser,
		nextCoords:  m.nextCoords,
		nextPereval: m.nextPereval,
	}
	for k, v := range m.users {
		s.users[k] = v
	}
	for k, v := range m.userIDs {
		s.userIDs[k] = v
	}
	for k, v := range m.coords {
		s.coords[k] = v
	}
	for k, v := range m.perevals {
		s.perevals[k] = v
	}
	for k, v := range m.images {
		s.images[k] = append([]model.ImageInput(nil), v...)
	}
	return s
}

func (m *MemStore) restore(s memSnapshot) {
	m.users = s.users
	m.userIDs = s.userIDs
	m.coords = s.coords
	m.perevals = s.perevals
	m.images = s.images
	m.nextUser = s.nextUser
	m.nextCoords = s.nextCoords
	m.nextPereval = s.nextPereval
}

func (m *MemStore) UserByEmail(_ context.Context, email string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.userIDs[email]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return m.users[id], nil
}

func (m *MemStore) CreateUser(_ context.Context, u model.UserInput) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.userIDs[u.Email]; ok {
		return 0, fmt.Errorf("%w: duplicate email %s", ErrEntityCreate, u.Email)
	}
	m.nextUser++
	id := m.nextUser
	m.users[id] = model.User{
		ID: id, Email: u.Email,
		FirstName: u.Name, LastName: u.Fam, Patronymic: u.Otc, Phone: u.Phone,
	}
	m.userIDs[u.Email] = id
	return id, nil
}

func (m *MemStore) UpdateUserByEmail(_ context.Context, email string, u model.UserInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.userIDs[email]
	if !ok {
		return nil // UPDATE of an absent row affects nothing
	}
	usr := m.users[id]
	usr.FirstName = u.Name
	usr.LastName = u.Fam
	usr.Patronymic = u.Otc
	usr.Phone = u.Phone
	m.users[id] = usr
	return nil
}

func (m *MemStore) CoordsExists(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.coords[id]
	return ok, nil
}

func (m *MemStore) CreateCoords(_ context.Context, c model.CoordsInput) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextCoords++
	id := m.nextCoords
	m.coords[id] = model.Coords{ID: id, Latitude: c.Latitude, Longitude: c.Longitude, Height: c.Height}
	return id, nil
}

func (m *MemStore) UpdateCoords(_ context.Context, id int64, c model.CoordsInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.coords[id]; !ok {
		return nil
	}
	m.coords[id] = model.Coords{ID: id, Latitude: c.Latitude, Longitude: c.Longitude, Height: c.Height}
	return nil
}

func (m *MemStore) CreatePereval(_ context.Context, req model.SubmitRequest, userID, coordsID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextPereval++
	id := m.nextPereval
	m.perevals[id] = model.Pereval{
		ID: id, Status: model.StatusNew, CoordsID: coordsID, UserID: userID,
		BeautyTitle: req.BeautyTitle, Title: req.Title,
		OtherTitles: req.OtherTitles, Connect: req.Connect,
		AddTime:     time.Now().UTC(),
		LevelWinter: req.Level.Winter, LevelSummer: req.Level.Summer,
		LevelAutumn: req.Level.Autumn, LevelSpring: req.Level.Spring,
	}
	return id, nil
}

func (m *MemStore) UpdatePereval(_ context.Context, id, coordsID int64, req model.SubmitRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.perevals[id]
	if !ok {
		return nil
	}
	p.CoordsID = coordsID
	p.BeautyTitle = req.BeautyTitle
	p.Title = req.Title
	p.OtherTitles = req.OtherTitles
	p.Connect = req.Connect
	p.LevelWinter = req.Level.Winter
	p.LevelSummer = req.Level.Summer
	p.LevelAutumn = req.Level.Autumn
	p.LevelSpring = req.Level.Spring
	m.perevals[id] = p
	return nil
}

func (m *MemStore) PerevalWithUser(_ context.Context, id int64) (model.PerevalOwner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.perevals[id]
	if !ok {
		return model.PerevalOwner{}, sql.ErrNoRows
	}
	return model.PerevalOwner{
		ID: p.ID, Status: p.Status, CoordsID: p.CoordsID, UserID: p.UserID,
		Owner: m.users[p.UserID],
	}, nil
}

func (m *MemStore) PerevalByID(_ context.Context, id int64) (model.PerevalRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.perevals[id]
	if !ok {
		return model.PerevalRow{}, sql.ErrNoRows
	}
	return model.PerevalRow{Pereval: p, Coords: m.coords[p.CoordsID], Owner: m.users[p.UserID]}, nil
}

func (m *MemStore) PerevalsByEmail(_ context.Context, email string) ([]model.PerevalRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	userID, ok := m.userIDs[email]
	out := make([]model.PerevalRow, 0)
	if !ok {
		return out, nil
	}
	for id := int64(1); id <= m.nextPereval; id++ {
		p, present := m.perevals[id]
		if !present || p.UserID != userID {
			continue
		}
		out = append(out, model.PerevalRow{Pereval: p, Coords: m.coords[p.CoordsID], Owner: m.users[p.UserID]})
	}
	return out, nil
}

// SetPerevalStatus moves a pass to another review state, standing in
// for the external moderation actor that owns status transitions.
func (m *MemStore) SetPerevalStatus(id int64, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.perevals[id]; ok {
		p.Status = status
		m.perevals[id] = p
	}
}

func (m *MemStore) CreateImages(_ context.Context, perevalID int64, images []model.ImageInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ImageWriteErr != nil {
		return fmt.Errorf("%w: %s", ErrEntityCreate, m.ImageWriteErr)
	}
	m.images[perevalID] = append(m.images[perevalID], images...)
	return nil
}

func (m *MemStore) ImagesByPereval(_ context.Context, perevalID int64) ([]model.ImageInput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.ImageInput(nil), m.images[perevalID]...), nil
}

package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"study-assistant-be/internal/entity"
	"study-assistant-be/internal/repository/contract"
	"study-assistant-be/internal/repository/specification"
	"study-assistant-be/internal/repository/unitofwork"
	"study-assistant-be/pkg/events"
	"study-assistant-be/pkg/llm"
)

var errInjected = errors.New("injected store failure")

// memStore is the in-memory backing for the fake repositories. All fake
// unit-of-work instances created from one factory share it, mirroring how
// the real ones share a database.
type memStore struct {
	sessions map[int64]*entity.ChatSession
	messages map[int64]*entity.ChatMessage
	feedback map[int64]*entity.MessageFeedback
	users    map[int64]*entity.User
	projects map[int64]*entity.Project
	memos    map[int64]*entity.Memo
	nextId   int64

	// failMessageCreateAt makes the Nth message Create fail (1-based).
	failMessageCreateAt int
	messageCreates      int
}

func newMemStore() *memStore {
	return &memStore{
		sessions: make(map[int64]*entity.ChatSession),
		messages: make(map[int64]*entity.ChatMessage),
		feedback: make(map[int64]*entity.MessageFeedback),
		users:    make(map[int64]*entity.User),
		projects: make(map[int64]*entity.Project),
		memos:    make(map[int64]*entity.Memo),
	}
}

func (s *memStore) nextID() int64 {
	s.nextId++
	return s.nextId
}

func (s *memStore) snapshot() *memStore {
	cp := newMemStore()
	cp.nextId = s.nextId
	cp.failMessageCreateAt = s.failMessageCreateAt
	cp.messageCreates = s.messageCreates
	for k, v := range s.sessions {
		c := *v
		cp.sessions[k] = &c
	}
	for k, v := range s.messages {
		c := *v
		cp.messages[k] = &c
	}
	for k, v := range s.feedback {
		c := *v
		cp.feedback[k] = &c
	}
	for k, v := range s.users {
		c := *v
		cp.users[k] = &c
	}
	for k, v := range s.projects {
		c := *v
		cp.projects[k] = &c
	}
	for k, v := range s.memos {
		c := *v
		cp.memos[k] = &c
	}
	return cp
}

func (s *memStore) restore(snap *memStore) {
	s.sessions = snap.sessions
	s.messages = snap.messages
	s.feedback = snap.feedback
	s.users = snap.users
	s.projects = snap.projects
	s.memos = snap.memos
	s.nextId = snap.nextId
	s.messageCreates = snap.messageCreates
}

type fakeRepositoryFactory struct {
	store *memStore
}

func newFakeFactory() *fakeRepositoryFactory {
	return &fakeRepositoryFactory{store: newMemStore()}
}

func (f *fakeRepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{store: f.store}
}

type fakeUnitOfWork struct {
	store *memStore
	snap  *memStore
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error {
	u.snap = u.store.snapshot()
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	u.snap = nil
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	if u.snap != nil {
		u.store.restore(u.snap)
		u.snap = nil
	}
	return nil
}

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository {
	return &fakeUserRepository{store: u.store}
}

func (u *fakeUnitOfWork) ProjectRepository() contract.ProjectRepository {
	return &fakeProjectRepository{store: u.store}
}

func (u *fakeUnitOfWork) MemoRepository() contract.MemoRepository {
	return &fakeMemoRepository{store: u.store}
}

func (u *fakeUnitOfWork) ChatSessionRepository() contract.ChatSessionRepository {
	return &fakeChatSessionRepository{store: u.store}
}

func (u *fakeUnitOfWork) ChatMessageRepository() contract.ChatMessageRepository {
	return &fakeChatMessageRepository{store: u.store}
}

func (u *fakeUnitOfWork) MessageFeedbackRepository() contract.MessageFeedbackRepository {
	return &fakeMessageFeedbackRepository{store: u.store}
}

// sessionMatches interprets the query specifications against one row.
func sessionMatches(s *entity.ChatSession, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.OwnedBy:
			if s.UserIdx != v.UserIdx {
				return false
			}
		case specification.BySessionID:
			if s.ChatSessionId != v.ChatSessionId {
				return false
			}
		case specification.ByProjectID:
			if s.ProjectId == nil || *s.ProjectId != v.ProjectId {
				return false
			}
		case specification.TitleSearch:
			if s.Title == nil {
				return false
			}
			if !strings.Contains(strings.ToLower(*s.Title), strings.ToLower(v.Query)) {
				return false
			}
		}
	}
	return true
}

func paginationOf(specs []specification.Specification) (limit, offset int, ok bool) {
	for _, spec := range specs {
		if p, isPage := spec.(specification.Paginate); isPage {
			return p.Limit, p.Offset, true
		}
	}
	return 0, 0, false
}

func applyPagination[T any](rows []T, specs []specification.Specification) []T {
	limit, offset, ok := paginationOf(specs)
	if !ok {
		return rows
	}
	if offset >= len(rows) {
		return nil
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

type fakeChatSessionRepository struct {
	store *memStore
}

func (r *fakeChatSessionRepository) Create(ctx context.Context, session *entity.ChatSession) error {
	session.ChatSessionId = r.store.nextID()
	c := *session
	r.store.sessions[session.ChatSessionId] = &c
	return nil
}

func (r *fakeChatSessionRepository) Update(ctx context.Context, session *entity.ChatSession) error {
	c := *session
	r.store.sessions[session.ChatSessionId] = &c
	return nil
}

func (r *fakeChatSessionRepository) Delete(ctx context.Context, id int64) error {
	delete(r.store.sessions, id)
	return nil
}

func (r *fakeChatSessionRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	rows, err := r.FindAll(ctx, specs...)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (r *fakeChatSessionRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	var rows []*entity.ChatSession
	for _, s := range r.store.sessions {
		if sessionMatches(s, specs) {
			c := *s
			rows = append(rows, &c)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].UpdatedAt.Equal(rows[j].UpdatedAt) {
			return rows[i].UpdatedAt.After(rows[j].UpdatedAt)
		}
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	return applyPagination(rows, specs), nil
}

func (r *fakeChatSessionRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var n int64
	for _, s := range r.store.sessions {
		if sessionMatches(s, specs) {
			n++
		}
	}
	return n, nil
}

func (r *fakeChatSessionRepository) ClearProject(ctx context.Context, projectId int64) error {
	for _, s := range r.store.sessions {
		if s.ProjectId != nil && *s.ProjectId == projectId {
			s.ProjectId = nil
		}
	}
	return nil
}

func messageMatches(m *entity.ChatMessage, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.BySessionID:
			if m.ChatSessionId != v.ChatSessionId {
				return false
			}
		case specification.ByMessageID:
			if m.MessageId != v.MessageId {
				return false
			}
		}
	}
	return true
}

type fakeChatMessageRepository struct {
	store *memStore
}

func (r *fakeChatMessageRepository) Create(ctx context.Context, message *entity.ChatMessage) error {
	r.store.messageCreates++
	if r.store.failMessageCreateAt > 0 && r.store.messageCreates == r.store.failMessageCreateAt {
		return errInjected
	}
	message.MessageId = r.store.nextID()
	c := *message
	r.store.messages[message.MessageId] = &c
	return nil
}

func (r *fakeChatMessageRepository) Delete(ctx context.Context, id int64) error {
	delete(r.store.messages, id)
	return nil
}

func (r *fakeChatMessageRepository) DeleteBySessionId(ctx context.Context, sessionId int64) error {
	for id, m := range r.store.messages {
		if m.ChatSessionId == sessionId {
			delete(r.store.messages, id)
		}
	}
	return nil
}

func (r *fakeChatMessageRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error) {
	rows, err := r.FindAll(ctx, specs...)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (r *fakeChatMessageRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	var rows []*entity.ChatMessage
	for _, m := range r.store.messages {
		if messageMatches(m, specs) {
			c := *m
			rows = append(rows, &c)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.Before(rows[j].CreatedAt)
		}
		return rows[i].MessageId < rows[j].MessageId
	})
	return applyPagination(rows, specs), nil
}

func (r *fakeChatMessageRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	rows, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}

type fakeMessageFeedbackRepository struct {
	store *memStore
}

func (r *fakeMessageFeedbackRepository) Upsert(ctx context.Context, feedback *entity.MessageFeedback) error {
	for _, existing := range r.store.feedback {
		if existing.ChatSessionId == feedback.ChatSessionId && existing.MessageId == feedback.MessageId {
			existing.Rating = feedback.Rating
			existing.CreatedAt = feedback.CreatedAt
			*feedback = *existing
			return nil
		}
	}
	feedback.FeedbackId = r.store.nextID()
	c := *feedback
	r.store.feedback[feedback.FeedbackId] = &c
	return nil
}

func (r *fakeMessageFeedbackRepository) FindBySessionAndMessage(ctx context.Context, sessionId, messageId int64) (*entity.MessageFeedback, error) {
	for _, fb := range r.store.feedback {
		if fb.ChatSessionId == sessionId && fb.MessageId == messageId {
			c := *fb
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeMessageFeedbackRepository) DeleteBySessionId(ctx context.Context, sessionId int64) error {
	for id, fb := range r.store.feedback {
		if fb.ChatSessionId == sessionId {
			delete(r.store.feedback, id)
		}
	}
	return nil
}

type fakeUserRepository struct {
	store *memStore
}

func (r *fakeUserRepository) Create(ctx context.Context, user *entity.User) error {
	user.UserIdx = r.store.nextID()
	c := *user
	r.store.users[user.UserIdx] = &c
	return nil
}

func (r *fakeUserRepository) Update(ctx context.Context, user *entity.User) error {
	c := *user
	r.store.users[user.UserIdx] = &c
	return nil
}

func (r *fakeUserRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, u := range r.store.users {
		if userMatches(u, specs) {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func userMatches(u *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.ByUserIdx:
			if u.UserIdx != v.UserIdx {
				return false
			}
		case specification.ByUserId:
			if u.UserId != v.UserId {
				return false
			}
		case specification.ByEmail:
			if u.Email != v.Email {
				return false
			}
		case specification.ActiveUsers:
			if !u.IsActive {
				return false
			}
		}
	}
	return true
}

func (r *fakeUserRepository) CreatePasswordResetToken(ctx context.Context, token *entity.PasswordResetToken) error {
	token.Id = r.store.nextID()
	return nil
}

func (r *fakeUserRepository) FindPasswordResetToken(ctx context.Context, specs ...specification.Specification) (*entity.PasswordResetToken, error) {
	return nil, nil
}

func (r *fakeUserRepository) UpdatePasswordResetToken(ctx context.Context, token *entity.PasswordResetToken) error {
	return nil
}

type fakeProjectRepository struct {
	store *memStore
}

func (r *fakeProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	project.ProjectId = r.store.nextID()
	c := *project
	r.store.projects[project.ProjectId] = &c
	return nil
}

func (r *fakeProjectRepository) Update(ctx context.Context, project *entity.Project) error {
	c := *project
	r.store.projects[project.ProjectId] = &c
	return nil
}

func (r *fakeProjectRepository) Delete(ctx context.Context, id int64) error {
	delete(r.store.projects, id)
	return nil
}

func (r *fakeProjectRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Project, error) {
	for _, p := range r.store.projects {
		if projectMatches(p, specs) {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeProjectRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Project, error) {
	var rows []*entity.Project
	for _, p := range r.store.projects {
		if projectMatches(p, specs) {
			c := *p
			rows = append(rows, &c)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ProjectId < rows[j].ProjectId })
	return rows, nil
}

func (r *fakeProjectRepository) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := r.store.projects[id]
	return ok, nil
}

func projectMatches(p *entity.Project, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.ByProjectPK:
			if p.ProjectId != v.ProjectId {
				return false
			}
		case specification.OwnedBy:
			if p.UserIdx != v.UserIdx {
				return false
			}
		}
	}
	return true
}

type fakeMemoRepository struct {
	store *memStore
}

func (r *fakeMemoRepository) Create(ctx context.Context, memo *entity.Memo) error {
	memo.MemoId = r.store.nextID()
	c := *memo
	r.store.memos[memo.MemoId] = &c
	return nil
}

func (r *fakeMemoRepository) Update(ctx context.Context, memo *entity.Memo) error {
	c := *memo
	r.store.memos[memo.MemoId] = &c
	return nil
}

func (r *fakeMemoRepository) Delete(ctx context.Context, id int64) error {
	delete(r.store.memos, id)
	return nil
}

func (r *fakeMemoRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Memo, error) {
	for _, m := range r.store.memos {
		if memoMatches(m, specs) {
			c := *m
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeMemoRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Memo, error) {
	var rows []*entity.Memo
	for _, m := range r.store.memos {
		if memoMatches(m, specs) {
			c := *m
			rows = append(rows, &c)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].MemoId < rows[j].MemoId })
	return rows, nil
}

func memoMatches(m *entity.Memo, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.ByMemoID:
			if m.MemoId != v.MemoId {
				return false
			}
		case specification.OwnedBy:
			if m.UserIdx != v.UserIdx {
				return false
			}
		}
	}
	return true
}

// fakePublisher records title-generation dispatches.
type fakePublisher struct {
	payloads [][]byte
}

func (p *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

// fakeEventPublisher records domain events.
type fakeEventPublisher struct {
	published []events.Event
}

func (p *fakeEventPublisher) Publish(ctx context.Context, event events.Event) error {
	p.published = append(p.published, event)
	return nil
}

// fakeProvider is a scripted completion provider.
type fakeProvider struct {
	response string
	err      error
	calls    int
	lastHist []llm.Message
}

func (p *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.calls++
	p.lastHist = history
	if p.err != nil {
		return "", p.err
	}
	return p.response, nil
}

func (p *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

// fakeEmailService records outbound mail instead of dialing SMTP.
type fakeEmailService struct {
	resetRecipients []string
	idReminders     []sentIdReminder
	sendErr         error
}

type sentIdReminder struct {
	email    string
	nickname string
	userId   string
}

func (m *fakeEmailService) SendResetToken(toEmail, token string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.resetRecipients = append(m.resetRecipients, toEmail)
	return nil
}

func (m *fakeEmailService) SendUserId(toEmail, nickname, userId string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.idReminders = append(m.idReminders, sentIdReminder{email: toEmail, nickname: nickname, userId: userId})
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lorrc/chat-relay-backend/internal/core/domain"
	"github.com/lorrc/chat-relay-backend/internal/core/ports"
)

// MockEventBroadcaster is a mock implementation of ports.EventBroadcaster
type MockEventBroadcaster struct {
	mock.Mock
}

func NewMockEventBroadcaster() *MockEventBroadcaster {
	return &MockEventBroadcaster{}
}

func (m *MockEventBroadcaster) Broadcast(event domain.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

// MockIdentityResolver is a mock implementation of ports.IdentityResolver
type MockIdentityResolver struct {
	mock.Mock
}

func NewMockIdentityResolver() *MockIdentityResolver {
	return &MockIdentityResolver{}
}

func (m *MockIdentityResolver) ResolveContactID(address string) (string, bool) {
	args := m.Called(address)
	return args.String(0), args.Bool(1)
}

func (m *MockIdentityResolver) ResolveAddress(contactID string) (string, bool) {
	args := m.Called(contactID)
	return args.String(0), args.Bool(1)
}

func (m *MockIdentityResolver) Register(contactID, address string) {
	m.Called(contactID, address)
}

// MockMessageSender is a mock implementation of ports.MessageSender
type MockMessageSender struct {
	mock.Mock
}

func NewMockMessageSender() *MockMessageSender {
	return &MockMessageSender{}
}

func (m *MockMessageSender) SendText(ctx context.Context, toAddress, text string) error {
	args := m.Called(ctx, toAddress, text)
	return args.Error(0)
}

// MockAIAssistant is a mock implementation of ports.AIAssistant
type MockAIAssistant struct {
	mock.Mock
}

func NewMockAIAssistant() *MockAIAssistant {
	return &MockAIAssistant{}
}

func (m *MockAIAssistant) DraftReply(ctx context.Context, history []domain.ChatMessage, persona string) (string, error) {
	args := m.Called(ctx, history, persona)
	return args.String(0), args.Error(1)
}

func (m *MockAIAssistant) SuggestReplies(ctx context.Context, history []domain.ChatMessage) ([]string, error) {
	args := m.Called(ctx, history)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockIngressService is a mock implementation of ports.IngressService
type MockIngressService struct {
	mock.Mock
}

func NewMockIngressService() *MockIngressService {
	return &MockIngressService{}
}

func (m *MockIngressService) VerifyChallenge(mode, token, challenge string) (string, error) {
	args := m.Called(mode, token, challenge)
	return args.String(0), args.Error(1)
}

func (m *MockIngressService) ProcessDelivery(ctx context.Context, payload ports.DeliveryPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// MockCommandService is a mock implementation of ports.CommandService
type MockCommandService struct {
	mock.Mock
}

func NewMockCommandService() *MockCommandService {
	return &MockCommandService{}
}

func (m *MockCommandService) SendMessage(ctx context.Context, contactID, text string) error {
	args := m.Called(ctx, contactID, text)
	return args.Error(0)
}

func (m *MockCommandService) SendBroadcast(ctx context.Context, contactIDs []string, text string) (ports.BroadcastResult, error) {
	args := m.Called(ctx, contactIDs, text)
	return args.Get(0).(ports.BroadcastResult), args.Error(1)
}

func (m *MockCommandService) DraftReply(ctx context.Context, history []domain.ChatMessage, persona, contactID string) (string, error) {
	args := m.Called(ctx, history, persona, contactID)
	return args.String(0), args.Error(1)
}

func (m *MockCommandService) SuggestReplies(ctx context.Context, history []domain.ChatMessage) ([]string, error) {
	args := m.Called(ctx, history)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockContactDirectory is a mock implementation of ports.ContactDirectory
type MockContactDirectory struct {
	mock.Mock
}

func NewMockContactDirectory() *MockContactDirectory {
	return &MockContactDirectory{}
}

func (m *MockContactDirectory) LoadAll(ctx context.Context) ([]domain.ContactIdentity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ContactIdentity), args.Error(1)
}

func (m *MockContactDirectory) Save(ctx context.Context, contact domain.ContactIdentity) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

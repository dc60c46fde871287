package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mamacare/tracker-service/internal/core/domain"
)

// ChatService implements the assistant chat with a small canned
// knowledge base. Conversation history lives in memory for the session
// only.
type ChatService struct {
	mu       sync.Mutex
	messages []*domain.ChatMessage
	now      func() time.Time
}

// NewChatService creates a new chat service
func NewChatService() *ChatService {
	return &ChatService{now: time.Now}
}

// cannedReplies maps topic keywords to the assistant's stock answers
var cannedReplies = []struct {
	keywords []string
	reply    string
}{
	{
		keywords: []string{"sleep", "tired", "insomnia"},
		reply:    "Sleep can be hard during pregnancy and with a newborn. Try side sleeping with a pillow between your knees, and rest when your baby rests. If exhaustion feels overwhelming, mention it to your midwife or doctor.",
	},
	{
		keywords: []string{"nausea", "sick", "vomit", "morning sickness"},
		reply:    "Nausea is very common, especially in the first trimester. Small frequent meals, ginger tea and staying hydrated often help. Contact your doctor if you cannot keep fluids down.",
	},
	{
		keywords: []string{"kick", "movement", "moving"},
		reply:    "Most people start feeling movements between weeks 18 and 24. If you notice a clear reduction in your baby's usual pattern, contact your maternity unit straight away.",
	},
	{
		keywords: []string{"vaccine", "vaccination", "immunisation", "jab"},
		reply:    "Your vaccination schedule in the app follows your national immunisation programme. Check the schedule tab for upcoming doses, and speak to your health visitor or doctor about anything marked overdue.",
	},
	{
		keywords: []string{"contraction", "labor", "labour"},
		reply:    "Time your contractions with the tracker. As a rough guide, call your maternity unit when contractions come every 5 minutes, last about 60 seconds, and have done so for an hour.",
	},
	{
		keywords: []string{"sad", "anxious", "depress", "overwhelm", "cry"},
		reply:    "Thank you for sharing how you feel. Mood dips are common, but you do not have to manage them alone. Please talk to your doctor, midwife or health visitor, and reach out to someone you trust today.",
	},
}

const defaultChatReply = "I can help with questions about pregnancy, your baby's development, vaccinations and how you are feeling. What would you like to know?"

// SendMessage records the user message and returns the assistant reply
func (s *ChatService) SendMessage(ctx context.Context, content string) (*domain.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.NewValidationError("content", "must not be empty")
	}

	now := s.now()
	userMsg := &domain.ChatMessage{
		ID:      uuid.New(),
		Role:    domain.ChatRoleUser,
		Content: content,
		SentAt:  now,
	}
	reply := &domain.ChatMessage{
		ID:      uuid.New(),
		Role:    domain.ChatRoleAssistant,
		Content: replyFor(content),
		SentAt:  now,
	}

	s.mu.Lock()
	s.messages = append(s.messages, userMsg, reply)
	s.mu.Unlock()

	return reply, nil
}

// replyFor picks the stock answer whose keywords match the message
func replyFor(content string) string {
	lowered := strings.ToLower(content)
	for _, canned := range cannedReplies {
		for _, keyword := range canned.keywords {
			if strings.Contains(lowered, keyword) {
				return canned.reply
			}
		}
	}
	return defaultChatReply
}

// History returns the conversation so far, oldest first
func (s *ChatService) History(ctx context.Context) []*domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

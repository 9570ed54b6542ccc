// Package chat relays operator questions to the watsonx Orchestrate Hub
// Director agent, falling back to a local rule-based responder whenever the
// relay is unavailable or fails.
package chat

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/visionflow/internal/model"
	"github.com/sells-group/visionflow/pkg/orchestrate"
)

// Response is a chat turn's reply and the agent that produced it.
type Response struct {
	Response string `json:"response"`
	Agent    string `json:"agent"`
}

// Service answers operator chat messages.
type Service struct {
	client orchestrate.Client
	log    *zap.Logger
}

// New wires a chat Service. A nil client means every message is answered
// locally.
func New(client orchestrate.Client) *Service {
	return &Service{
		client: client,
		log:    zap.L().Named("chat"),
	}
}

// Configured reports whether the orchestrate relay is wired.
func (s *Service) Configured() bool {
	return s.client != nil
}

// Chat answers a message, enriched with the caller's last analysis context.
// Relay failures are not surfaced; the local responder always produces an
// answer.
func (s *Service) Chat(ctx context.Context, message string, analysisContext map[string]any) (*Response, error) {
	if message == "" {
		return nil, model.Validationf("message is required")
	}

	fullMessage := message + contextInfo(analysisContext)

	if s.client != nil {
		reply, err := s.client.Run(ctx, fullMessage)
		if err == nil {
			return &Response{Response: reply, Agent: "Hub Director"}, nil
		}
		s.log.Warn("orchestrate relay failed, using local responder", zap.Error(err))
	}

	return &Response{
		Response: localResponse(message, analysisContext),
		Agent:    "Hub Director (Local Mode)",
	}, nil
}

func contextInfo(analysisContext map[string]any) string {
	if analysisContext == nil {
		return ""
	}
	if condition, ok := analysisContext["box_condition"]; ok {
		return fmt.Sprintf("\n\nContext: Last box inspection showed %v condition.", condition)
	}
	if match, ok := analysisContext["match"]; ok {
		status := "MISMATCH"
		if b, _ := match.(bool); b {
			status = "MATCH"
		}
		return fmt.Sprintf("\n\nContext: Last label verification showed %s.", status)
	}
	return ""
}

const helpText = `I'm the Hub Director. I can help you with:
- Box Inspection: Upload an image to check for damage
- Label Verification: Verify shipping labels match items
- Status Queries: Ask about your last analysis
- Recommendations: Get action items based on findings

Just upload an image or ask me a question!`

// localResponse is the rule-based fallback. Context-aware answers come first,
// then the generic help/greeting/default replies.
func localResponse(message string, analysisContext map[string]any) string {
	msg := strings.ToLower(message)

	if analysisContext != nil {
		if condition, ok := analysisContext["box_condition"]; ok {
			canShip, _ := analysisContext["can_ship"].(bool)

			if strings.Contains(msg, "status") || strings.Contains(msg, "what") {
				verdict := "NO"
				if canShip {
					verdict = "YES"
				}
				return strings.TrimSpace(fmt.Sprintf(
					"Based on the last inspection, the box condition is %v. Can ship: %s. %s",
					condition, verdict, contextStr(analysisContext, "reasoning")))
			}
			if strings.Contains(msg, "ship") {
				if canShip {
					return fmt.Sprintf(
						"Yes, this shipment can proceed. The box is in %v condition with %v defects found.",
						condition, defectCount(analysisContext))
				}
				return fmt.Sprintf(
					"No, I recommend holding this shipment. The box is %v with critical issues. Action required: %s",
					condition, recommendedAction(analysisContext))
			}
		} else if match, ok := analysisContext["match"]; ok {
			status := "MISMATCH"
			if b, _ := match.(bool); b {
				status = "MATCH"
			}
			return strings.TrimSpace(fmt.Sprintf(
				"Label verification shows: %s. Label text: '%s' vs Visual object: '%s'. %s",
				status, contextStr(analysisContext, "label_text"),
				contextStr(analysisContext, "visual_object"), contextStr(analysisContext, "reasoning")))
		}
	}

	if strings.Contains(msg, "help") {
		return helpText
	}

	for _, greeting := range []string{"hello", "hi", "hey"} {
		if strings.Contains(msg, greeting) {
			return "Hello! I'm the Hub Director. Upload a shipment image for analysis, or ask me about your last inspection."
		}
	}

	return fmt.Sprintf(
		"I understand your query: '%s'. Upload an image for analysis, or ask me about shipment status, defects, or recommendations.",
		message)
}

func contextStr(analysisContext map[string]any, key string) string {
	if v, ok := analysisContext[key]; ok {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

func defectCount(analysisContext map[string]any) any {
	if v, ok := analysisContext["total_defects"]; ok {
		return v
	}
	return 0
}

func recommendedAction(analysisContext map[string]any) string {
	findings, ok := analysisContext["findings"].([]any)
	if ok && len(findings) > 0 {
		if m, ok := findings[0].(map[string]any); ok {
			if action, ok := m["recommended_action"].(string); ok && action != "" {
				return action
			}
		}
	}
	return "Review manually"
}

package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/scenemcp/scenebridge/chat"
	"github.com/scenemcp/scenebridge/client"
)

// displayRole renders a history role for output. Imported session files may
// carry messages with an empty role.
func displayRole(role string) string {
	if role == "" {
		return "Unknown"
	}
	return strings.ToUpper(role[:1]) + role[1:]
}

func registerChatTools(s *server.MCPServer, c *client.Client, h *chat.Manager) {
	s.AddTool(mcp.Tool{
		Name:        "send_chat_message",
		Description: "Send a chat message to the scene host and receive a conversational response with scene context.",
		InputSchema: inputSchema(map[string]any{
			"message":               propString("The chat message to send"),
			"include_scene_context": propBoolean("Include current scene information in the context (default true)"),
		}, "message"),
	}, func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		message := request.GetString("message", "")
		includeContext := request.GetBool("include_scene_context", true)

		h.AddMessage(chat.RoleUser, message, nil)
		history := h.History(10, "")
		historyPayload := make([]map[string]any, 0, len(history))
		for _, msg := range history {
			historyPayload = append(historyPayload, map[string]any{
				"role":      msg.Role,
				"content":   msg.Content,
				"timestamp": msg.Timestamp,
			})
		}

		raw, err := c.SendCommand("process_chat", map[string]any{
			"message":               message,
			"include_scene_context": includeContext,
			"history":               historyPayload,
		})
		if err != nil {
			return errResult("sending chat message", err), nil
		}

		var result struct {
			Response    string         `json:"response"`
			ContextInfo map[string]any `json:"context_info"`
			Error       string         `json:"error"`
		}
		if err := json.Unmarshal(raw, &result); err != nil {
			return errResult("sending chat message", err), nil
		}
		if result.Error != "" {
			return mcp.NewToolResultError(result.Error), nil
		}

		h.AddMessage(chat.RoleAssistant, result.Response, result.ContextInfo)

		output := result.Response
		if includeContext && len(result.ContextInfo) > 0 {
			var sb strings.Builder
			sb.WriteString(output)
			sb.WriteString("\n\n[Scene Context]\n")
			if v, ok := result.ContextInfo["object_count"]; ok {
				fmt.Fprintf(&sb, "Objects in scene: %v\n", v)
			}
			if v, ok := result.ContextInfo["selected_objects"]; ok {
				fmt.Fprintf(&sb, "Selected: %v\n", v)
			}
			output = sb.String()
		}
		return mcp.NewToolResultText(output), nil
	})

	s.AddTool(mcp.Tool{
		Name:        "get_chat_history",
		Description: "Get the chat conversation history.",
		InputSchema: inputSchema(map[string]any{
			"limit": propInteger("Maximum number of recent messages to return (default 20)"),
		}),
	}, func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		history := h.History(request.GetInt("limit", 20), "")
		if len(history) == 0 {
			return mcp.NewToolResultText("No chat history available."), nil
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "Chat History (showing %d messages):\n\n", len(history))
		for _, msg := range history {
			fmt.Fprintf(&sb, "[%s] %s: %s\n\n", msg.Timestamp, displayRole(msg.Role), msg.Content)
		}
		return mcp.NewToolResultText(sb.String()), nil
	})

	s.AddTool(mcp.Tool{
		Name:        "clear_chat_history",
		Description: "Clear all chat history and start a new conversation session.",
		InputSchema: inputSchema(map[string]any{}),
	}, func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		h.Reset()
		return mcp.NewToolResultText("Chat history cleared. Starting new conversation session."), nil
	})

	s.AddTool(mcp.Tool{
		Name:        "get_chat_status",
		Description: "Check whether chat is enabled on the host and summarize the current session.",
		InputSchema: inputSchema(map[string]any{}),
	}, func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := c.SendCommand("get_chat_status", map[string]any{})
		if err != nil {
			return errResult("checking chat status", err), nil
		}
		var result struct {
			Enabled bool   `json:"enabled"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &result); err != nil {
			return errResult("checking chat status", err), nil
		}
		message := result.Message
		if result.Enabled {
			summary := h.Summary()
			message += fmt.Sprintf("\n\nCurrent session: %s\nMessages: %d (%d user, %d assistant)",
				summary.SessionID, summary.MessageCount, summary.UserMessages, summary.AssistantMessages)
		}
		return mcp.NewToolResultText(message), nil
	})
}

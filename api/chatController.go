package api

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/healthmate-org/healthmate-api/common"
)

type chatPayload struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

// postChat run one chat turn against the generative assistant
func (a *API) postChat(ctx context.Context, res *common.HttpResponseWriter) error {
	userID := res.VARS["userID"]

	var payload chatPayload
	if err := json.Unmarshal(res.Body, &payload); err != nil {
		detailed := errorInvalidParams.SetInternalMessage(err)
		return res.WriteError(&detailed)
	}
	if payload.Message == "" {
		return res.WriteError(&errorInvalidParams)
	}

	reply, err := a.chat.SendMessage(ctx, res.TraceID, userID, payload.Message, payload.SessionID)
	if err != nil {
		return a.writeUseCaseError(res, err)
	}
	return res.WriteJSON(reply)
}

// getChat chat history in chronological order, optionally scoped to one
// session
func (a *API) getChat(ctx context.Context, res *common.HttpResponseWriter) error {
	userID := res.VARS["userID"]
	query := res.URL.Query()

	sessionID := query.Get("sessionId")
	limit, _ := strconv.ParseInt(query.Get("limit"), 10, 64)

	messages, err := a.chat.GetHistory(ctx, res.TraceID, userID, sessionID, limit)
	if err != nil {
		return a.writeUseCaseError(res, err)
	}
	return res.WriteJSON(map[string]interface{}{"messages": messages})
}

// deleteChat delete one session, or the whole chat log with deleteAll=true
func (a *API) deleteChat(ctx context.Context, res *common.HttpResponseWriter) error {
	userID := res.VARS["userID"]
	query := res.URL.Query()

	sessionID := query.Get("sessionId")
	deleteAll := query.Get("deleteAll") == "true"
	if deleteAll {
		sessionID = ""
	}

	deleted, err := a.chat.DeleteHistory(ctx, res.TraceID, userID, sessionID)
	if err != nil {
		return a.writeUseCaseError(res, err)
	}

	message := "Chat session deleted"
	if deleteAll {
		message = "All chats deleted"
	}
	return res.WriteJSON(map[string]interface{}{
		"success":      true,
		"deletedCount": deleted,
		"message":      message,
	})
}

// getChatSessions conversation list, most recent first
func (a *API) getChatSessions(ctx context.Context, res *common.HttpResponseWriter) error {
	userID := res.VARS["userID"]

	sessions, err := a.chat.ListSessions(ctx, res.TraceID, userID)
	if err != nil {
		return a.writeUseCaseError(res, err)
	}
	return res.WriteJSON(map[string]interface{}{"sessions": sessions})
}

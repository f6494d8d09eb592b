// Package sdk is the Go client for the room-chat HTTP API. It holds the
// session cookie in a jar, so one Client is one logged-in identity.
package sdk

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Message is the wire shape of a chat message as the API returns it.
type Message struct {
	ID          string     `json:"_id"`
	ChatRoomID  string     `json:"chatRoomId"`
	UserID      string     `json:"userId"`
	Username    string     `json:"username"`
	Content     string     `json:"content"`
	Timestamp   time.Time  `json:"timestamp"`
	MessageType string     `json:"messageType"`
	ImageData   string     `json:"imageData,omitempty"`
	ReplyTo     *ReplyView `json:"replyTo,omitempty"`
	LikedBy     []string   `json:"likedBy,omitempty"`
}

type ReplyView struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Content  string `json:"content"`
}

type OnlineUser struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

type Me struct {
	UserID              string  `json:"userId"`
	Username            string  `json:"username"`
	CurrentChatRoomID   *string `json:"currentChatRoomId,omitempty"`
	CurrentChatRoomName *string `json:"currentChatRoomName,omitempty"`
}

type SendMessageRequest struct {
	Content     string `json:"content,omitempty"`
	ReplyTo     string `json:"replyTo,omitempty"`
	MessageType string `json:"messageType,omitempty"`
	ImageData   string `json:"imageData,omitempty"`
	ContentType string `json:"contentType,omitempty"`
}

type UploadedImage struct {
	Success     bool   `json:"success"`
	ImageData   string `json:"imageData"`
	ContentType string `json:"contentType"`
}

type apiMessage struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

type messagesEnvelope struct {
	Messages []Message `json:"messages"`
}

type sendEnvelope struct {
	Message    string  `json:"message"`
	NewMessage Message `json:"newMessage"`
}

type onlineEnvelope struct {
	OnlineUsers []OnlineUser `json:"onlineUsers"`
}

// APIError is any non-2xx response, carrying the server's message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// ErrAuthRequired reports 401 responses so callers can route back to
// login instead of retrying.
var ErrAuthRequired = &APIError{Status: http.StatusUnauthorized, Message: "authentication required"}

// ErrForbidden reports 403 responses; for room-scoped calls it means
// the session lost access to the room.
var ErrForbidden = &APIError{Status: http.StatusForbidden, Message: "access denied"}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	var payload apiMessage
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if payload.Message != "" {
			return &APIError{Status: resp.StatusCode, Message: payload.Message}
		}
		return ErrAuthRequired
	case http.StatusForbidden:
		if payload.Message != "" {
			return &APIError{Status: resp.StatusCode, Message: payload.Message}
		}
		return ErrForbidden
	}
	if payload.Message == "" {
		payload.Message = resp.Status
	}
	return &APIError{Status: resp.StatusCode, Message: payload.Message}
}

func (c *Client) Register(ctx context.Context, username, pin string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"username": username,
		"pin":      pin,
	}, nil)
}

func (c *Client) Login(ctx context.Context, username, pin string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"pin":      pin,
	}, nil)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

func (c *Client) Me(ctx context.Context) (*Me, error) {
	var me Me
	if err := c.do(ctx, http.MethodGet, "/api/user/me", nil, &me); err != nil {
		return nil, err
	}
	return &me, nil
}

func (c *Client) CreateRoom(ctx context.Context, name, pin string) error {
	return c.do(ctx, http.MethodPost, "/api/chatrooms/create", map[string]string{
		"name": name,
		"pin":  pin,
	}, nil)
}

func (c *Client) JoinRoom(ctx context.Context, name, pin string) error {
	return c.do(ctx, http.MethodPost, "/api/chatrooms/join", map[string]string{
		"name": name,
		"pin":  pin,
	}, nil)
}

func (c *Client) OnlineUsers(ctx context.Context, roomID string) ([]OnlineUser, error) {
	var env onlineEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/chatrooms/"+roomID+"/online-users", nil, &env); err != nil {
		return nil, err
	}
	return env.OnlineUsers, nil
}

func (c *Client) Messages(ctx context.Context, roomID string) ([]Message, error) {
	var env messagesEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/messages/"+roomID, nil, &env); err != nil {
		return nil, err
	}
	return env.Messages, nil
}

func (c *Client) SendMessage(ctx context.Context, roomID string, req SendMessageRequest) (*Message, error) {
	var env sendEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/messages/"+roomID, req, &env); err != nil {
		return nil, err
	}
	return &env.NewMessage, nil
}

func (c *Client) ToggleLike(ctx context.Context, roomID, messageID string) (*Message, error) {
	var env sendEnvelope
	path := "/api/messages/" + roomID + "/" + messageID + "/like"
	if err := c.do(ctx, http.MethodPost, path, nil, &env); err != nil {
		return nil, err
	}
	return &env.NewMessage, nil
}

// UploadImage sends the raw bytes through the server-side transcode and
// returns the inline payload to attach to a SendMessageRequest.
func (c *Client) UploadImage(ctx context.Context, filename, contentType string, data []byte) (*UploadedImage, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := make(map[string][]string)
	hdr["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="image"; filename="%s"`, filename)}
	hdr["Content-Type"] = []string{contentType}
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/upload-image", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, decodeError(resp)
	}

	var uploaded UploadedImage
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return nil, err
	}
	return &uploaded, nil
}

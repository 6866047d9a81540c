package devops

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind 远程调用失败的分类
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindRemoteUnavailable
	KindMalformedResponse
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindRemoteUnavailable:
		return "RemoteUnavailable"
	case KindMalformedResponse:
		return "MalformedResponse"
	default:
		return "Unknown"
	}
}

// ErrMalformedResponse 响应体无法解析
var ErrMalformedResponse = errors.New("devops: malformed response")

// APIError Azure DevOps 返回的非 2xx 响应
type APIError struct {
	StatusCode int
	Message    string
	TypeKey    string
}

func (err *APIError) Error() string {
	return fmt.Sprintf("devops: HTTP %d: %s", err.StatusCode, err.Message)
}

// IsNotFound 工作项不存在（或没有读权限，Azure DevOps 对两者都返回 404）
func IsNotFound(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == http.StatusNotFound
}

// KindOf 把错误归类，nil 返回 KindUnknown
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	if IsNotFound(err) {
		return KindNotFound
	}
	if errors.Is(err, ErrMalformedResponse) {
		return KindMalformedResponse
	}
	return KindRemoteUnavailable
}

func parseAPIError(statusCode int, body []byte) *APIError {
	apiError := &APIError{StatusCode: statusCode}
	var wire struct {
		Message string `json:"message"`
		TypeKey string `json:"typeKey"`
	}
	if json.Unmarshal(body, &wire) == nil && wire.Message != "" {
		apiError.Message = wire.Message
		apiError.TypeKey = wire.TypeKey
		return apiError
	}
	text := strings.Join(strings.Fields(string(body)), " ")
	if text == "" {
		text = http.StatusText(statusCode)
	}
	if len(text) > 200 {
		text = text[:200] + "..."
	}
	apiError.Message = text
	return apiError
}

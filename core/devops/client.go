package devops

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"devops-mcp/model"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultBaseURL    = "https://dev.azure.com"
	DefaultAPIVersion = "7.1"

	// revisions 接口单页上限
	revisionPageSize = 200
	maxResponseBytes = 16 << 20
)

type Config struct {
	BaseURL      string
	Organization string
	// Token PAT，以 Basic 认证发送
	Token      string
	APIVersion string
	HTTPClient *http.Client
}

// Client 绑定到某个 organization 的 Azure DevOps 工作项客户端
type Client struct {
	baseURL       string
	organization  string
	apiVersion    string
	authorization string
	httpClient    *http.Client
	tracer        trace.Tracer
}

func NewClient(config Config) (*Client, error) {
	org := strings.TrimSpace(config.Organization)
	if org == "" {
		return nil, fmt.Errorf("devops: organization is required")
	}
	if strings.ContainsAny(org, "/?#") {
		return nil, fmt.Errorf("devops: invalid organization name %q", org)
	}
	if config.Token == "" {
		return nil, fmt.Errorf("devops: personal access token is required")
	}
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	apiVersion := config.APIVersion
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/") + "/" + url.PathEscape(org),
		organization:  org,
		apiVersion:    apiVersion,
		authorization: "Basic " + base64.StdEncoding.EncodeToString([]byte(":"+config.Token)),
		httpClient:    httpClient,
		tracer:        otel.Tracer("devops-mcp/core/devops"),
	}, nil
}

// Factory 进程内共享 PAT 与 http.Client，按调用方传入的 organization 创建 Client
type Factory struct {
	config Config
}

func NewFactory(config Config) *Factory {
	config.Organization = ""
	return &Factory{config: config}
}

func (f *Factory) Client(organization string) (*Client, error) {
	config := f.config
	config.Organization = organization
	return NewClient(config)
}

type workItemWire struct {
	ID     int                        `json:"id"`
	Rev    int                        `json:"rev"`
	Fields map[string]json.RawMessage `json:"fields"`
}

// GetWorkItem 根据 id 获取工作项
func (c *Client) GetWorkItem(ctx context.Context, id int) (*model.WorkItem, error) {
	var wire workItemWire
	path := fmt.Sprintf("/_apis/wit/workitems/%d", id)
	if err := c.do(ctx, "GetWorkItem", http.MethodGet, path, nil, nil, &wire); err != nil {
		return nil, err
	}
	if wire.ID == 0 {
		wire.ID = id
	}
	return &model.WorkItem{
		ID:    wire.ID,
		Title: fieldString(wire.Fields, model.FieldTitle),
		State: fieldString(wire.Fields, model.FieldState),
		Type:  fieldString(wire.Fields, model.FieldType),
	}, nil
}

// GetRevisions 获取工作项全部修订，按服务端返回的顺序（旧到新）
func (c *Client) GetRevisions(ctx context.Context, id int) ([]model.Revision, error) {
	path := fmt.Sprintf("/_apis/wit/workItems/%d/revisions", id)
	var revisions []model.Revision
	for skip := 0; ; skip += revisionPageSize {
		query := url.Values{}
		query.Set("$top", strconv.Itoa(revisionPageSize))
		if skip > 0 {
			query.Set("$skip", strconv.Itoa(skip))
		}
		var page struct {
			Count int            `json:"count"`
			Value []workItemWire `json:"value"`
		}
		if err := c.do(ctx, "GetRevisions", http.MethodGet, path, query, nil, &page); err != nil {
			return nil, err
		}
		for _, v := range page.Value {
			revisions = append(revisions, model.Revision{
				Rev:         v.Rev,
				ChangedDate: fieldString(v.Fields, model.FieldChangedDate),
				ChangedBy:   fieldString(v.Fields, model.FieldChangedBy),
				History:     fieldString(v.Fields, model.FieldHistory),
			})
		}
		if len(page.Value) < revisionPageSize {
			return revisions, nil
		}
	}
}

// QueryByText 标题或描述包含 text 的工作项 id，保持服务端返回顺序
func (c *Client) QueryByText(ctx context.Context, text string) ([]int, error) {
	wiql, err := TextQuery(text).Build()
	if err != nil {
		return nil, err
	}
	return c.Query(ctx, wiql)
}

// Query 执行一条已经构建好的 WIQL
func (c *Client) Query(ctx context.Context, wiql string) ([]int, error) {
	var result struct {
		WorkItems []struct {
			ID int `json:"id"`
		} `json:"workItems"`
	}
	body := map[string]string{"query": wiql}
	if err := c.do(ctx, "QueryByWiql", http.MethodPost, "/_apis/wit/wiql", nil, body, &result); err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(result.WorkItems))
	for _, ref := range result.WorkItems {
		ids = append(ids, ref.ID)
	}
	return ids, nil
}

func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, requestBody any, result any) (err error) {
	ctx, span := c.tracer.Start(ctx, "devops."+operation, trace.WithAttributes(
		attribute.String("devops.organization", c.organization),
		attribute.String("http.request.method", method),
		attribute.String("url.path", path),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if query == nil {
		query = url.Values{}
	}
	query.Set("api-version", c.apiVersion)
	fullURL := c.baseURL + path + "?" + query.Encode()

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return fmt.Errorf("devops: encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return fmt.Errorf("devops: creating request: %w", err)
	}
	req.Header.Set("Authorization", c.authorization)
	req.Header.Set("Accept", "application/json")
	if requestBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("devops: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("devops: reading response body: %w", err)
	}
	//PAT 无效时服务端返回 203 和登录页面
	if resp.StatusCode == http.StatusNonAuthoritativeInfo {
		return &APIError{StatusCode: resp.StatusCode, Message: "authentication failed, check the personal access token"}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseAPIError(resp.StatusCode, body)
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrMalformedResponse, method, path, err)
	}
	return nil
}

// fieldString 字段缺失或为 null 时返回空串，身份字段渲染为 "displayName <uniqueName>"
func fieldString(fields map[string]json.RawMessage, name string) string {
	raw, ok := fields[name]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var identity struct {
		DisplayName string `json:"displayName"`
		UniqueName  string `json:"uniqueName"`
	}
	if json.Unmarshal(raw, &identity) == nil && (identity.DisplayName != "" || identity.UniqueName != "") {
		switch {
		case identity.DisplayName == "":
			return identity.UniqueName
		case identity.UniqueName == "":
			return identity.DisplayName
		default:
			return identity.DisplayName + " <" + identity.UniqueName + ">"
		}
	}
	return string(raw)
}

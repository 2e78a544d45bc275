package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// --- Response types (дублируются из api/dto.go, CLI не импортирует internal/api) ---

// WorkflowResponse — workflow из API.
type WorkflowResponse struct {
	ID               string `json:"id"`
	Slug             string `json:"slug"`
	Name             string `json:"name"`
	ValidationStatus string `json:"validation_status"`
	ValidatedAt      string `json:"validated_at,omitempty"`
	CreatedAt        string `json:"created_at"`
}

// StepResponse — шаг из API.
type StepResponse struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

// DependencyResponse — созданное ребро из API.
type DependencyResponse struct {
	Step         string `json:"step"`
	Prerequisite string `json:"prerequisite"`
}

// StepDetail — шаг с предпосылками из API.
type StepDetail struct {
	Slug          string   `json:"slug"`
	Description   string   `json:"description"`
	Prerequisites []string `json:"prerequisites"`
}

// WorkflowDetailsResponse — детали workflow из API.
type WorkflowDetailsResponse struct {
	Slug  string       `json:"slug"`
	Name  string       `json:"name"`
	Steps []StepDetail `json:"steps"`
}

// ExecutionOrderResponse — порядок выполнения из API.
type ExecutionOrderResponse struct {
	Order []string `json:"order"`
}

// --- API response wrappers ---

type dataResponse struct {
	Data json.RawMessage `json:"data"`
}

type listResponse struct {
	Data  json.RawMessage `json:"data"`
	Total int             `json:"total"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// --- Client ---

// Client — HTTP-клиент для Stepline API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент для API.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// --- Workflows ---

// ListWorkflows возвращает все workflows.
func (c *Client) ListWorkflows() ([]WorkflowResponse, error) {
	var workflows []WorkflowResponse
	err := c.list("/api/v1/workflows", &workflows)
	return workflows, err
}

// CreateWorkflow создаёт новый workflow.
func (c *Client) CreateWorkflow(slug, name string) (*WorkflowResponse, error) {
	body := map[string]string{"slug": slug, "name": name}
	var wf WorkflowResponse
	err := c.post("/api/v1/workflows", body, &wf)
	return &wf, err
}

// GetWorkflow возвращает workflow по slug.
func (c *Client) GetWorkflow(slug string) (*WorkflowResponse, error) {
	var wf WorkflowResponse
	err := c.get("/api/v1/workflows/"+slug, &wf)
	return &wf, err
}

// DeleteWorkflow удаляет workflow.
func (c *Client) DeleteWorkflow(slug string) error {
	return c.delete("/api/v1/workflows/" + slug)
}

// GetDetails возвращает шаги workflow с предпосылками.
func (c *Client) GetDetails(slug string) (*WorkflowDetailsResponse, error) {
	var details WorkflowDetailsResponse
	err := c.get("/api/v1/workflows/"+slug+"/details", &details)
	return &details, err
}

// GetExecutionOrder возвращает порядок выполнения шагов.
func (c *Client) GetExecutionOrder(slug string) (*ExecutionOrderResponse, error) {
	var order ExecutionOrderResponse
	err := c.get("/api/v1/workflows/"+slug+"/execution-order", &order)
	return &order, err
}

// --- Steps ---

// ListSteps возвращает шаги workflow.
func (c *Client) ListSteps(workflowSlug string) ([]StepResponse, error) {
	var steps []StepResponse
	err := c.list("/api/v1/workflows/"+workflowSlug+"/steps", &steps)
	return steps, err
}

// AddStep добавляет шаг в workflow.
func (c *Client) AddStep(workflowSlug, slug, description string) (*StepResponse, error) {
	body := map[string]string{"slug": slug, "description": description}
	var step StepResponse
	err := c.post("/api/v1/workflows/"+workflowSlug+"/steps", body, &step)
	return &step, err
}

// --- Dependencies ---

// AddDependency добавляет ребро "prerequisite раньше step".
func (c *Client) AddDependency(workflowSlug, step, prerequisite string) (*DependencyResponse, error) {
	body := map[string]string{"step": step, "prerequisite": prerequisite}
	var dep DependencyResponse
	err := c.post("/api/v1/workflows/"+workflowSlug+"/dependencies", body, &dep)
	return &dep, err
}

// --- HTTP helpers ---

func (c *Client) get(path string, result any) error {
	return c.doData(http.MethodGet, path, nil, result)
}

func (c *Client) post(path string, body any, result any) error {
	return c.doData(http.MethodPost, path, body, result)
}

func (c *Client) delete(path string) error {
	resp, err := c.do(http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return c.checkError(resp)
}

func (c *Client) list(path string, result any) error {
	resp, err := c.do(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	var lr listResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return json.Unmarshal(lr.Data, result)
}

func (c *Client) doData(method, path string, body any, result any) error {
	resp, err := c.do(method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	// 204 No Content
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var dr dataResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if result != nil {
		return json.Unmarshal(dr.Data, result)
	}
	return nil
}

func (c *Client) do(method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}

func (c *Client) checkError(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return fmt.Errorf("API error: HTTP %d", resp.StatusCode)
	}

	return fmt.Errorf("%s: %s", er.Error.Code, er.Error.Message)
}

package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"erp/config"
)

// insightPrompt 经营洞察提示词模板
const insightPrompt = `You are a business intelligence expert. Analyze the provided revenue and expense data to identify key trends, patterns, and anomalies. Provide actionable recommendations to improve profitability and efficiency.

Revenue Data: %s
Expense Data: %s

Analyze the data and provide business insights. What are the key trends and patterns in revenue and expenses? What are the major drivers of profitability? Are there any areas of concern that need to be addressed?
Based on your analysis, what are your top 3 recommendations for improving the business's financial performance? Be specific and actionable.

Respond with a JSON object containing exactly two string fields: "insights" and "recommendations". Do not wrap the JSON in markdown fences.`

// InsightInput 洞察生成输入（营收/支出数据的 JSON 序列化文本）
type InsightInput struct {
	RevenueData string
	ExpenseData string
}

// InsightResult 洞察生成结果
type InsightResult struct {
	Insights        string `json:"insights"`
	Recommendations string `json:"recommendations"`
}

// InsightClient AI 经营洞察客户端（OpenAI 兼容接口）
// 单次请求/响应，不重试、不流式
type InsightClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewInsightClient 创建洞察客户端
func NewInsightClient(cfg config.AIConfig) *InsightClient {
	return &InsightClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate 生成经营洞察
func (s *InsightClient) Generate(input InsightInput) (*InsightResult, error) {
	prompt := fmt.Sprintf(insightPrompt, input.RevenueData, input.ExpenseData)

	requestBody := chatCompletionRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
	}
	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("构建请求失败: %w", err)
	}

	req, err := http.NewRequest("POST", strings.TrimRight(s.baseURL, "/")+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求AI服务失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("AI服务返回错误: %d, %s", resp.StatusCode, string(body))
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, fmt.Errorf("解析AI响应失败: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("AI响应为空")
	}

	return parseInsightContent(completion.Choices[0].Message.Content), nil
}

// parseInsightContent 解析模型输出
// 优先按 JSON 解析（容忍 markdown 代码块包裹）；
// 解析失败时整段文本作为 insights 返回，不算错误
func parseInsightContent(content string) *InsightResult {
	trimmed := trimFences(content)
	var result InsightResult
	if err := json.Unmarshal([]byte(trimmed), &result); err == nil && result.Insights != "" {
		return &result
	}
	return &InsightResult{Insights: strings.TrimSpace(content)}
}

// trimFences 去掉 ```json ... ``` 包裹
func trimFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	}
	return strings.TrimSpace(trimmed)
}

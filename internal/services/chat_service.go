package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"retail_pos/internal/models"
)

// ChatReply is one answered chat turn. Products are attached so the
// panel can render them inline under the assistant message.
type ChatReply struct {
	Query    string           `json:"query"`
	Reply    string           `json:"reply"`
	Products []models.Product `json:"products"`
}

type ChatService interface {
	// DeriveQuery normalizes free text into a product search query.
	DeriveQuery(text string) string
	Respond(text string) (*ChatReply, error)
}

type chatService struct {
	productService ProductService
	openAIKey      string
}

func NewChatService(productService ProductService, openAIKey string) ChatService {
	return &chatService{productService: productService, openAIKey: openAIKey}
}

var nonWordRE = regexp.MustCompile(`[^a-z0-9\s]+`)

// DeriveQuery lowercases, strips punctuation and keeps words longer
// than two characters.
func (s *chatService) DeriveQuery(text string) string {
	text = nonWordRE.ReplaceAllString(strings.ToLower(text), " ")

	var words []string
	for _, w := range strings.Fields(text) {
		if len(w) > 2 {
			words = append(words, w)
		}
	}
	return strings.Join(words, " ")
}

func (s *chatService) Respond(text string) (*ChatReply, error) {
	query := s.DeriveQuery(text)
	if query == "" {
		return &ChatReply{
			Reply: "I can help you find products. Try asking for something like \"blue shirts\" or \"running shoes\".",
		}, nil
	}

	products, err := s.productService.SearchProducts(query)
	if err != nil {
		return nil, err
	}

	reply := s.templateReply(text, query, products)

	// With an API key configured the canned reply is rephrased; any
	// failure falls back to the template.
	if s.openAIKey != "" {
		if phrased, err := s.rephraseWithOpenAI(text, reply); err == nil && phrased != "" {
			reply = phrased
		}
	}

	return &ChatReply{Query: query, Reply: reply, Products: products}, nil
}

func (s *chatService) templateReply(original, query string, products []models.Product) string {
	if len(products) == 0 {
		return fmt.Sprintf("Sorry, I couldn't find any products matching \"%s\". Try different words or check the spelling.", original)
	}
	if len(products) == 1 {
		return fmt.Sprintf("I found 1 product for \"%s\":", query)
	}
	return fmt.Sprintf("I found %d products for \"%s\":", len(products), query)
}

func (s *chatService) rephraseWithOpenAI(message, reply string) (string, error) {
	requestBody := map[string]interface{}{
		"model": "gpt-3.5-turbo",
		"messages": []map[string]string{
			{
				"role":    "system",
				"content": "You are a shop assistant. Rephrase the given reply in a friendly tone. Keep product counts and quoted search terms exactly as they are.",
			},
			{
				"role":    "user",
				"content": "Customer asked: " + message + "\nReply to rephrase: " + reply,
			},
		},
		"max_tokens":  200,
		"temperature": 0.3,
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", "https://api.openai.com/v1/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.openAIKey)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var openAIResponse struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &openAIResponse); err != nil {
		return "", err
	}
	if len(openAIResponse.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}
	return strings.TrimSpace(openAIResponse.Choices[0].Message.Content), nil
}

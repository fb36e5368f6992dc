package recipe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mood-meal/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Spoonacular: config.SpoonacularConfig{
			APIKey:  "test-key",
			BaseURL: baseURL,
			Timeout: 5 * time.Second,
		},
	}
}

func searchBody(ids ...int64) string {
	results := make([]map[string]int64, 0, len(ids))
	for _, id := range ids {
		results = append(results, map[string]int64{"id": id})
	}
	body, _ := json.Marshal(map[string]interface{}{"results": results})
	return string(body)
}

func TestSearchReturnsDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/recipes/complexSearch":
			assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
			assert.Equal(t, "1", r.URL.Query().Get("number"))
			w.Write([]byte(searchBody(716429)))
		case "/recipes/716429/information":
			assert.Equal(t, "true", r.URL.Query().Get("includeNutrition"))
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id":      716429,
				"title":   "Pasta with Garlic",
				"image":   "https://img.example/716429.jpg",
				"summary": "A <b>quick</b> dinner with <a href=\"#\">garlic</a>.",
				"analyzedInstructions": []map[string]interface{}{
					{"steps": []map[string]string{
						{"step": "Boil the pasta."},
						{"step": "Toss with garlic."},
					}},
				},
				"extendedIngredients": []map[string]string{
					{"original": "200g pasta"},
					{"original": "2 cloves garlic"},
				},
				"nutrition": map[string]interface{}{
					"nutrients": []map[string]interface{}{
						{"name": "Calories", "amount": 512.6},
						{"name": "Protein", "amount": 20.2},
					},
				},
			})
		default:
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	detail, err := client.Search(context.Background(), "garlic pasta", nil)

	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, int64(716429), detail.ID)
	assert.Equal(t, "Pasta with Garlic", detail.Name)
	assert.Equal(t, "A quick dinner with garlic.", detail.Summary)
	assert.Equal(t, "Boil the pasta.\nToss with garlic.", detail.Instructions)
	assert.Equal(t, []string{"200g pasta", "2 cloves garlic"}, detail.Ingredients)
	assert.Equal(t, 513, detail.Nutrition.Calories)
	assert.Equal(t, 20, detail.Nutrition.Protein)
	assert.Equal(t, 0, detail.Nutrition.Fat)
}

func TestSearchFallsBackToLastToken(t *testing.T) {
	var queries []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/recipes/complexSearch":
			query := r.URL.Query().Get("query")
			queries = append(queries, query)
			if query == "curry" {
				w.Write([]byte(searchBody(42)))
				return
			}
			w.Write([]byte(searchBody()))
		case "/recipes/42/information":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id":    42,
				"title": "Simple Curry",
			})
		default:
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	detail, err := client.Search(context.Background(), "spicy chicken curry", nil)

	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, []string{"spicy chicken curry", "curry"}, queries)
	assert.Equal(t, "Simple Curry", detail.Name)
	// 步驟缺少時用固定句
	assert.Equal(t, NoInstructions, detail.Instructions)
}

func TestSearchNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(searchBody()))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	detail, err := client.Search(context.Background(), "nonexistent dish", nil)

	assert.NoError(t, err)
	assert.Nil(t, detail)
}

func TestSearchFiltersAllergens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/recipes/complexSearch":
			w.Write([]byte(searchBody(7)))
		default:
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id":    7,
				"title": "Omelette",
				"extendedIngredients": []map[string]string{
					{"original": "2 Eggs, beaten"},
				},
			})
		}
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	detail, err := client.Search(context.Background(), "omelette", []string{"egg"})

	assert.NoError(t, err)
	assert.Nil(t, detail)
}

func TestSearchServerErrorTreatedAsMiss(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	detail, err := client.Search(context.Background(), "anything", nil)

	assert.NoError(t, err)
	assert.Nil(t, detail)
}

func TestContainsAllergen(t *testing.T) {
	ingredients := []string{"200g pasta", "2 Eggs, beaten", "1 cup milk"}

	assert.True(t, ContainsAllergen(ingredients, []string{"egg"}))
	assert.True(t, ContainsAllergen(ingredients, []string{"MILK"}))
	assert.False(t, ContainsAllergen(ingredients, []string{"peanut"}))
	assert.False(t, ContainsAllergen(ingredients, []string{""}))
	assert.False(t, ContainsAllergen(ingredients, nil))
}

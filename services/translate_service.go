package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/patrickmn/go-cache"
	"github.com/traininghub/quiz_platform/storage"
)

// TranslateService proxies the anonymous Google translate endpoint and
// caches results per (text, targetLang) pair. The cache never expires
// within a server run and is persisted so restarts keep the hits.
type TranslateService struct {
	cache  *cache.Cache
	slot   *storage.FileSlot
	client *http.Client
}

func NewTranslateService(slot *storage.FileSlot) *TranslateService {
	s := &TranslateService{
		cache:  cache.New(cache.NoExpiration, 0),
		slot:   slot,
		client: http.DefaultClient,
	}
	s.warmLoad()
	return s
}

func (s *TranslateService) warmLoad() {
	data, err := s.slot.Read()
	if err != nil || len(data) == 0 {
		return
	}
	persisted := map[string]string{}
	if err := json.Unmarshal(data, &persisted); err != nil {
		log.Printf("Translation cache corrupt, starting empty: %v", err)
		return
	}
	for k, v := range persisted {
		s.cache.Set(k, v, cache.NoExpiration)
	}
	log.Printf("Loaded %d cached translations", len(persisted))
}

func (s *TranslateService) persist() {
	out := map[string]string{}
	for k, item := range s.cache.Items() {
		if v, ok := item.Object.(string); ok {
			out[k] = v
		}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return
	}
	if err := s.slot.Write(data); err != nil {
		log.Printf("Failed to persist translation cache: %v", err)
	}
}

// Translate returns the translated text and whether it came from the
// cache. Failures are never cached.
func (s *TranslateService) Translate(text, targetLang string) (string, bool, error) {
	key := fmt.Sprintf("%s_%s", text, targetLang)
	if v, ok := s.cache.Get(key); ok {
		return v.(string), true, nil
	}

	translated, err := s.fetch(text, targetLang)
	if err != nil {
		return "", false, err
	}

	s.cache.Set(key, translated, cache.NoExpiration)
	s.persist()
	return translated, false, nil
}

// fetch calls the unauthenticated gtx endpoint. The response is a
// nested array of segments: [[["translated","source",...],...],...];
// the segment heads joined together form the full translation.
func (s *TranslateService) fetch(text, targetLang string) (string, error) {
	endpoint := fmt.Sprintf(
		"https://translate.googleapis.com/translate_a/single?client=gtx&sl=ja&tl=%s&dt=t&q=%s",
		url.QueryEscape(targetLang), url.QueryEscape(text),
	)

	resp, err := s.client.Get(endpoint)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate endpoint returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return ParseGoogleResponse(body)
}

// ParseGoogleResponse extracts the joined translation from the raw
// nested-array payload.
func ParseGoogleResponse(body []byte) (string, error) {
	var parsed []any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	if len(parsed) == 0 {
		return "", fmt.Errorf("unexpected translate response shape")
	}
	segments, ok := parsed[0].([]any)
	if !ok || len(segments) == 0 {
		return "", fmt.Errorf("unexpected translate response shape")
	}

	var sb strings.Builder
	for _, seg := range segments {
		parts, ok := seg.([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		if text, ok := parts[0].(string); ok {
			sb.WriteString(text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("empty translation result")
	}
	return sb.String(), nil
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Rafals/storefront/internal/domain/model"
	repo "github.com/Rafals/storefront/internal/repository"

	"github.com/redis/go-redis/v9"
)

type credentialRedisRepository struct {
	client  *redis.Client
	profile string
}

// NewCredentialRedisRepository stores the session as JSON without a TTL.
func NewCredentialRedisRepository(client *redis.Client, profile string) repo.CredentialRepository {
	if profile == "" {
		profile = "default"
	}
	return &credentialRedisRepository{client: client, profile: profile}
}

func (r *credentialRedisRepository) Load(ctx context.Context) (model.Session, error) {
	data, err := r.client.Get(ctx, credentialKey(r.profile)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.Session{}, repo.ErrCredentialNotFound
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("redis get failed: %w", err)
	}

	var s model.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return model.Session{}, fmt.Errorf("unmarshal session failed: %w", err)
	}
	s.Role = model.ParseRole(string(s.Role))
	return s, nil
}

func (r *credentialRedisRepository) Save(ctx context.Context, s model.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session failed: %w", err)
	}
	if err := r.client.Set(ctx, credentialKey(r.profile), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *credentialRedisRepository) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, credentialKey(r.profile)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func credentialKey(profile string) string {
	return fmt.Sprintf("storefront:credential:%s", profile)
}

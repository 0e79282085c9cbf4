package usecase

import (
	"errors"
	"testing"
	"time"

	cachedomain "mailflow-backend/internal/cache/domain"
	cachedto "mailflow-backend/internal/cache/dto"
	messagedomain "mailflow-backend/internal/message/domain"
	messagedto "mailflow-backend/internal/message/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBucketRepo struct {
	buckets []*cachedomain.Bucket
}

func cloneBucket(b *cachedomain.Bucket) *cachedomain.Bucket {
	c := *b
	return &c
}

func (r *fakeBucketRepo) Create(b *cachedomain.Bucket) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	b.CreatedAt = time.Now()
	b.UpdatedAt = time.Now()
	r.buckets = append(r.buckets, cloneBucket(b))
	return nil
}

func (r *fakeBucketRepo) FindByKey(key string) (*cachedomain.Bucket, error) {
	var newest *cachedomain.Bucket
	for _, b := range r.buckets {
		if b.CacheKey != key || b.IsDeleted {
			continue
		}
		if newest == nil || b.CreatedAt.After(newest.CreatedAt) {
			newest = b
		}
	}
	if newest == nil {
		return nil, nil
	}
	return cloneBucket(newest), nil
}

func (r *fakeBucketRepo) FindExpired(now time.Time) ([]*cachedomain.Bucket, error) {
	var out []*cachedomain.Bucket
	for _, b := range r.buckets {
		if !b.IsDeleted && !b.ExpiresAt.After(now) {
			out = append(out, cloneBucket(b))
		}
	}
	return out, nil
}

func (r *fakeBucketRepo) Update(b *cachedomain.Bucket) error {
	for i, stored := range r.buckets {
		if stored.ID == b.ID {
			b.UpdatedAt = time.Now()
			r.buckets[i] = cloneBucket(b)
			return nil
		}
	}
	return errors.New("bucket not found")
}

type consolidation struct {
	messageID string
	cacheKey  string
	count     int
}

// fakeSender stands in for the lifecycle engine
type fakeSender struct {
	sendStatus     messagedomain.Status
	sendErr        error
	sendRequests   []*messagedto.SendMessageRequest
	cachedRequests []*messagedto.SendMessageRequest
	consolidations []consolidation
}

func (s *fakeSender) CreateAndSend(req *messagedto.SendMessageRequest) (*messagedomain.Message, error) {
	s.sendRequests = append(s.sendRequests, req)
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	return &messagedomain.Message{ID: uuid.New().String(), Status: s.sendStatus}, nil
}

func (s *fakeSender) CreateCached(req *messagedto.SendMessageRequest, cacheKey string) (*messagedomain.Message, error) {
	s.cachedRequests = append(s.cachedRequests, req)
	return &messagedomain.Message{
		ID:            uuid.New().String(),
		Status:        messagedomain.StatusCached,
		StatusMessage: "consolidated into cache bucket " + cacheKey,
	}, nil
}

func (s *fakeSender) RecordConsolidation(messageID, cacheKey string, count int) {
	s.consolidations = append(s.consolidations, consolidation{messageID, cacheKey, count})
}

type fakeSink struct {
	records []string
}

func (s *fakeSink) Record(level, source, message, context string) {
	s.records = append(s.records, level+" "+source+": "+message)
}

func cacheRequest() *cachedto.CacheMessageRequest {
	return &cachedto.CacheMessageRequest{
		SendMessageRequest: messagedto.SendMessageRequest{
			From:          "noreply@acme.com",
			To:            "a@x.com",
			Subject:       "Alert",
			Body:          "Disk almost full",
			CompanyID:     "acme",
			ApplicationID: "monitoring",
		},
		TTLSeconds: 60,
	}
}

func TestSendOrCacheCreatesBucketOnFirstRequest(t *testing.T) {
	repo := &fakeBucketRepo{}
	sender := &fakeSender{}
	uc := NewCacheUsecase(repo, sender, &fakeSink{}, time.Minute)

	message, err := uc.SendOrCache(cacheRequest())
	require.NoError(t, err)

	assert.Equal(t, messagedomain.StatusCached, message.Status)
	require.Len(t, repo.buckets, 1)
	bucket := repo.buckets[0]
	assert.Equal(t, 1, bucket.MessageCount)
	assert.True(t, bucket.ExpiresAt.After(time.Now()))
	assert.Len(t, sender.cachedRequests, 1)
	assert.Empty(t, sender.sendRequests)
}

func TestSendOrCacheConsolidatesDuplicates(t *testing.T) {
	repo := &fakeBucketRepo{}
	sender := &fakeSender{}
	uc := NewCacheUsecase(repo, sender, &fakeSink{}, time.Minute)

	first, err := uc.SendOrCache(cacheRequest())
	require.NoError(t, err)
	firstExpiry := repo.buckets[0].ExpiresAt

	// Same scope, recipients, subject, body, importance; only the footer
	// differs, which must not break the match
	duplicate := cacheRequest()
	duplicate.Footer = "a different footer"
	second, err := uc.SendOrCache(duplicate)
	require.NoError(t, err)

	require.Len(t, repo.buckets, 1)
	bucket := repo.buckets[0]
	assert.Equal(t, 2, bucket.MessageCount)
	assert.False(t, bucket.ExpiresAt.Before(firstExpiry))

	assert.Equal(t, messagedomain.StatusCached, first.Status)
	assert.Equal(t, messagedomain.StatusCached, second.Status)
	assert.Len(t, sender.cachedRequests, 2)
}

func TestSendOrCacheExpiredBucketStartsFresh(t *testing.T) {
	repo := &fakeBucketRepo{}
	sender := &fakeSender{}
	uc := NewCacheUsecase(repo, sender, &fakeSink{}, time.Minute)

	_, err := uc.SendOrCache(cacheRequest())
	require.NoError(t, err)

	// Force the bucket past its window
	repo.buckets[0].ExpiresAt = time.Now().Add(-time.Second)

	_, err = uc.SendOrCache(cacheRequest())
	require.NoError(t, err)

	require.Len(t, repo.buckets, 2)
	assert.Equal(t, 1, repo.buckets[1].MessageCount)
}

func TestFlushExpiredSendsConsolidatedMessage(t *testing.T) {
	repo := &fakeBucketRepo{}
	sender := &fakeSender{sendStatus: messagedomain.StatusSent}
	uc := NewCacheUsecase(repo, sender, &fakeSink{}, time.Minute)

	require.NoError(t, repo.Create(&cachedomain.Bucket{
		CacheKey:      "key-1",
		CompanyID:     "acme",
		ApplicationID: "monitoring",
		ToAddresses:   "a@x.com",
		Subject:       "Alert",
		Body:          "Disk almost full",
		MessageCount:  3,
		ExpiresAt:     time.Now().Add(-time.Minute),
	}))

	flushed, err := uc.FlushExpired()
	require.NoError(t, err)
	assert.Equal(t, 1, flushed)

	require.Len(t, sender.sendRequests, 1)
	req := sender.sendRequests[0]
	assert.Equal(t, "Alert (3 messages)", req.Subject)
	assert.Contains(t, req.Body, "consolidates 3 identical messages")
	assert.Contains(t, req.Body, "Disk almost full")
	assert.Equal(t, "acme", req.CompanyID)

	assert.True(t, repo.buckets[0].IsDeleted)
	require.Len(t, sender.consolidations, 1)
	assert.Equal(t, "key-1", sender.consolidations[0].cacheKey)
	assert.Equal(t, 3, sender.consolidations[0].count)
}

func TestFlushExpiredSkipsLiveBuckets(t *testing.T) {
	repo := &fakeBucketRepo{}
	sender := &fakeSender{sendStatus: messagedomain.StatusSent}
	uc := NewCacheUsecase(repo, sender, &fakeSink{}, time.Minute)

	require.NoError(t, repo.Create(&cachedomain.Bucket{
		CacheKey:  "key-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	flushed, err := uc.FlushExpired()
	require.NoError(t, err)
	assert.Equal(t, 0, flushed)
	assert.Empty(t, sender.sendRequests)
	assert.False(t, repo.buckets[0].IsDeleted)
}

func TestFlushExpiredLeavesBucketWhenDeliveryFails(t *testing.T) {
	repo := &fakeBucketRepo{}
	sender := &fakeSender{sendStatus: messagedomain.StatusFailed}
	sink := &fakeSink{}
	uc := NewCacheUsecase(repo, sender, sink, time.Minute)

	require.NoError(t, repo.Create(&cachedomain.Bucket{
		CacheKey:     "key-1",
		MessageCount: 2,
		ExpiresAt:    time.Now().Add(-time.Minute),
	}))

	flushed, err := uc.FlushExpired()
	require.NoError(t, err)
	assert.Equal(t, 0, flushed)
	assert.False(t, repo.buckets[0].IsDeleted)
	assert.NotEmpty(t, sink.records)

	// The next flush picks the bucket up again
	sender.sendStatus = messagedomain.StatusSent
	flushed, err = uc.FlushExpired()
	require.NoError(t, err)
	assert.Equal(t, 1, flushed)
	assert.True(t, repo.buckets[0].IsDeleted)
}

func TestFlushExpiredLeavesBucketOnSubmitError(t *testing.T) {
	repo := &fakeBucketRepo{}
	sender := &fakeSender{sendErr: errors.New("store unavailable")}
	sink := &fakeSink{}
	uc := NewCacheUsecase(repo, sender, sink, time.Minute)

	require.NoError(t, repo.Create(&cachedomain.Bucket{
		CacheKey:     "key-1",
		MessageCount: 2,
		ExpiresAt:    time.Now().Add(-time.Minute),
	}))

	flushed, err := uc.FlushExpired()
	require.NoError(t, err)
	assert.Equal(t, 0, flushed)
	assert.False(t, repo.buckets[0].IsDeleted)
	assert.NotEmpty(t, sink.records)
}

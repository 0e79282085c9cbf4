package usecase

import (
	"fmt"
	"log"
	"strings"
	"time"

	cachedomain "mailflow-backend/internal/cache/domain"
	cachedto "mailflow-backend/internal/cache/dto"
	"mailflow-backend/internal/cache/repository"
	messagedomain "mailflow-backend/internal/message/domain"
	messagedto "mailflow-backend/internal/message/dto"
	"mailflow-backend/pkg/errsink"
)

// cacheUsecase implements CacheUsecase
type cacheUsecase struct {
	bucketRepo repository.BucketRepository
	sender     MessageSender
	sink       errsink.Sink
	defaultTTL time.Duration
}

// NewCacheUsecase creates a new instance of cacheUsecase
func NewCacheUsecase(bucketRepo repository.BucketRepository, sender MessageSender, sink errsink.Sink, defaultTTL time.Duration) CacheUsecase {
	if defaultTTL <= 0 {
		defaultTTL = 10 * time.Minute
	}
	return &cacheUsecase{
		bucketRepo: bucketRepo,
		sender:     sender,
		sink:       sink,
		defaultTTL: defaultTTL,
	}
}

func (u *cacheUsecase) SendOrCache(req *cachedto.CacheMessageRequest) (*messagedomain.Message, error) {
	key := fingerprint(&req.SendMessageRequest)
	ttl := u.defaultTTL
	if req.TTLSeconds > 0 {
		ttl = time.Duration(req.TTLSeconds) * time.Second
	}
	now := time.Now()

	bucket, err := u.bucketRepo.FindByKey(key)
	if err != nil {
		return nil, err
	}

	if bucket != nil && bucket.Live(now) {
		// Duplicate within the window: count it and slide the expiry.
		// Concurrent duplicates may race here; under-counting is accepted.
		bucket.MessageCount++
		bucket.ExpiresAt = now.Add(ttl)
		if err := u.bucketRepo.Update(bucket); err != nil {
			return nil, err
		}
		log.Printf("[CacheUsecase] Bucket %s absorbed duplicate, count now %d", key, bucket.MessageCount)
	} else {
		bucket = u.newBucket(&req.SendMessageRequest, key, now.Add(ttl))
		if err := u.bucketRepo.Create(bucket); err != nil {
			return nil, err
		}
		log.Printf("[CacheUsecase] Created bucket %s expiring at %s", key, bucket.ExpiresAt.Format(time.RFC3339))
	}

	return u.sender.CreateCached(&req.SendMessageRequest, key)
}

func (u *cacheUsecase) FlushExpired() (int, error) {
	buckets, err := u.bucketRepo.FindExpired(time.Now())
	if err != nil {
		return 0, err
	}

	flushed := 0
	for _, bucket := range buckets {
		message, err := u.sender.CreateAndSend(u.consolidatedRequest(bucket))
		if err != nil {
			u.sink.Record(errsink.LevelError, "CacheUsecase",
				fmt.Sprintf("failed to submit consolidated send for bucket %s: %v", bucket.CacheKey, err),
				"bucket_id="+bucket.ID)
			continue
		}
		if message.Status != messagedomain.StatusSent {
			// Delivery did not succeed; keep the bucket so the next flush
			// retries it. There is no retry budget on this path.
			u.sink.Record(errsink.LevelError, "CacheUsecase",
				fmt.Sprintf("consolidated send for bucket %s was not delivered (message %s is %s), leaving bucket for the next flush", bucket.CacheKey, message.ID, message.Status),
				"bucket_id="+bucket.ID)
			continue
		}

		u.sender.RecordConsolidation(message.ID, bucket.CacheKey, bucket.MessageCount)

		bucket.IsDeleted = true
		if err := u.bucketRepo.Update(bucket); err != nil {
			u.sink.Record(errsink.LevelError, "CacheUsecase",
				fmt.Sprintf("consolidated send for bucket %s was delivered but the bucket could not be marked deleted: %v", bucket.CacheKey, err),
				"bucket_id="+bucket.ID)
			continue
		}
		flushed++
	}

	log.Printf("[CacheUsecase] Flushed %d of %d expired buckets", flushed, len(buckets))
	return flushed, nil
}

func (u *cacheUsecase) newBucket(req *messagedto.SendMessageRequest, key string, expiresAt time.Time) *cachedomain.Bucket {
	importance := messagedomain.Importance(strings.ToLower(strings.TrimSpace(req.Importance)))
	if !importance.Valid() {
		importance = messagedomain.ImportanceNormal
	}

	return &cachedomain.Bucket{
		CacheKey:      key,
		CompanyID:     req.CompanyID,
		ApplicationID: req.ApplicationID,
		FromAddress:   req.From,
		ToAddresses:   req.To,
		CCAddresses:   req.CC,
		BCCAddresses:  req.BCC,
		Subject:       req.Subject,
		Body:          req.Body,
		Header:        req.Header,
		Footer:        req.Footer,
		IsBodyHTML:    req.IsBodyHTML,
		Importance:    importance,
		MessageCount:  1,
		ExpiresAt:     expiresAt,
	}
}

// consolidatedRequest synthesizes the single outgoing request for a bucket:
// the subject carries the accumulated count and the body is wrapped with an
// explanatory preamble.
func (u *cacheUsecase) consolidatedRequest(bucket *cachedomain.Bucket) *messagedto.SendMessageRequest {
	subject := fmt.Sprintf("%s (%d messages)", bucket.Subject, bucket.MessageCount)
	preamble := fmt.Sprintf("This message consolidates %d identical messages received within the consolidation window.", bucket.MessageCount)

	var body string
	if bucket.IsBodyHTML {
		body = "<p>" + preamble + "</p>" + bucket.Body
	} else {
		body = preamble + "\n\n" + bucket.Body
	}

	return &messagedto.SendMessageRequest{
		From:          bucket.FromAddress,
		To:            bucket.ToAddresses,
		CC:            bucket.CCAddresses,
		BCC:           bucket.BCCAddresses,
		Subject:       subject,
		Body:          body,
		Header:        bucket.Header,
		Footer:        bucket.Footer,
		IsBodyHTML:    bucket.IsBodyHTML,
		Importance:    string(bucket.Importance),
		CompanyID:     bucket.CompanyID,
		ApplicationID: bucket.ApplicationID,
	}
}

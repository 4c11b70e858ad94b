package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/GityImran/ideation-lab/internal/domain"
	"github.com/GityImran/ideation-lab/internal/ports/output"

	goredis "github.com/redis/go-redis/v9"
)

// Compile-time check to ensure RedisSessionStore implements SessionStore interface
var _ output.SessionStore = (*RedisSessionStore)(nil)

const (
	defaultKeyPrefix = "ideation:"

	fieldKind          = "kind"
	fieldPayload       = "payload"
	fieldCreatedAt     = "created_at"
	fieldIsActive      = "is_active"
	fieldDeckName      = "deck_name"
	fieldDeckSessionID = "deck_session_id"
)

// createScript writes a fresh session hash, clears the old roster and indexes the id.
// KEYS: session hash, participants zset, index zset
// ARGV: kind, payload, created_at, deck name, deck session id, score, ttl ms, session id, mode
// Returns 1 when a session already existed. In "nx" mode an existing session is left untouched.
var createScript = goredis.NewScript(`
local existed = redis.call('EXISTS', KEYS[1])
if existed == 1 and ARGV[9] == 'nx' then
	return 1
end
redis.call('DEL', KEYS[1], KEYS[2])
redis.call('HSET', KEYS[1], 'kind', ARGV[1], 'payload', ARGV[2], 'created_at', ARGV[3], 'is_active', '1', 'deck_name', ARGV[4], 'deck_session_id', ARGV[5])
if tonumber(ARGV[7]) > 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[7])
end
redis.call('ZADD', KEYS[3], ARGV[6], ARGV[8])
return existed
`)

// joinScript adds a participant once, numbering joins so the roster keeps its order.
// KEYS: session hash, participants zset
// ARGV: participant id
var joinScript = goredis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end
if redis.call('ZSCORE', KEYS[2], ARGV[1]) then
	return 1
end
local seq = redis.call('HINCRBY', KEYS[1], 'participant_seq', 1)
redis.call('ZADD', KEYS[2], seq, ARGV[1])
local ttl = redis.call('PTTL', KEYS[1])
if ttl > 0 then
	redis.call('PEXPIRE', KEYS[2], ttl)
end
return 1
`)

// setActiveScript flips is_active on an existing session only.
// KEYS: session hash
// ARGV: "1" or "0"
var setActiveScript = goredis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end
redis.call('HSET', KEYS[1], 'is_active', ARGV[1])
return 1
`)

// sweepScript removes every indexed session scored before the cutoff in one step,
// so a session re-created mid-sweep (new score) is never deleted.
// KEYS: index zset
// ARGV: exclusive cutoff score, session key prefix, participants key prefix
var sweepScript = goredis.NewScript(`
local ids = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', '(' .. ARGV[1])
for _, id in ipairs(ids) do
	redis.call('DEL', ARGV[2] .. id, ARGV[3] .. id)
	redis.call('ZREM', KEYS[1], id)
end
return #ids
`)

// pruneScript drops index entries whose session hash is still gone.
// KEYS: index zset
// ARGV: session key prefix, ids...
var pruneScript = goredis.NewScript(`
local pruned = 0
for i = 2, #ARGV do
	if redis.call('EXISTS', ARGV[1] .. ARGV[i]) == 0 then
		pruned = pruned + redis.call('ZREM', KEYS[1], ARGV[i])
	end
end
return pruned
`)

// RedisConfig contains configuration options for Redis.
type RedisConfig struct {
	// Addr is the Redis server address (e.g., "localhost:6379")
	Addr string

	// Password is the Redis password (empty for no auth)
	Password string

	// DB is the Redis database number (0-15)
	DB int

	// KeyPrefix is prepended to all keys (default: "ideation:")
	KeyPrefix string

	// BaseURL is the public address used to derive access URLs
	BaseURL string

	// Retention is applied as a key TTL so abandoned sessions vanish even without a sweep
	Retention time.Duration
}

// RedisSessionStore struct - Output adapter storing sessions in Redis
// Each session is a hash, its roster a sorted set scored by join order, and
// an index sorted set scored by creation time drives listings and sweeps.
type RedisSessionStore struct {
	client    *goredis.Client
	prefix    string
	baseURL   string
	retention time.Duration
	now       func() time.Time
}

// NewRedisSessionStore creates a session store on top of an existing client.
func NewRedisSessionStore(client *goredis.Client, cfg RedisConfig) *RedisSessionStore {
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisSessionStore{
		client:    client,
		prefix:    prefix,
		baseURL:   cfg.BaseURL,
		retention: cfg.Retention,
		now:       time.Now,
	}
}

// NewRedisFromConfig connects to Redis and creates a session store.
func NewRedisFromConfig(cfg RedisConfig) (*RedisSessionStore, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis: failed to connect: %w", err)
	}

	return NewRedisSessionStore(client, cfg), nil
}

func (r *RedisSessionStore) sessionKey(id string) string {
	return r.prefix + "session:" + id
}

func (r *RedisSessionStore) participantsKey(id string) string {
	return r.prefix + "participants:" + id
}

func (r *RedisSessionStore) indexKey() string {
	return r.prefix + "sessions"
}

// Create stores a new session, overwriting any session with the same id.
func (r *RedisSessionStore) Create(ctx context.Context, req domain.NewSession) (*domain.StudySession, bool, error) {
	session, existed, err := r.create(ctx, req, "upsert")
	if err != nil {
		return nil, false, err
	}
	return session, existed, nil
}

// CreateIfAbsent stores a new session only if the id is not taken.
func (r *RedisSessionStore) CreateIfAbsent(ctx context.Context, req domain.NewSession) (*domain.StudySession, bool, error) {
	session, existed, err := r.create(ctx, req, "nx")
	if err != nil {
		return nil, false, err
	}
	if existed {
		current, err := r.Get(ctx, req.SessionID)
		if err != nil {
			return nil, false, err
		}
		return current, false, nil
	}
	return session, true, nil
}

func (r *RedisSessionStore) create(ctx context.Context, req domain.NewSession, mode string) (*domain.StudySession, bool, error) {
	session := domain.NewStudySession(req, r.baseURL, r.now())

	keys := []string{r.sessionKey(req.SessionID), r.participantsKey(req.SessionID), r.indexKey()}
	args := []interface{}{
		string(session.ContentKind),
		string(session.Payload),
		domain.FormatTimestamp(session.CreatedAt),
		session.SourceDeckName,
		session.SourceDeckSessionID,
		session.CreatedAt.UnixMilli(),
		r.retention.Milliseconds(),
		session.SessionID,
		mode,
	}

	existed, err := createScript.Run(ctx, r.client, keys, args...).Int()
	if err != nil {
		return nil, false, fmt.Errorf("redis: failed to create session: %w", err)
	}
	return session, existed == 1, nil
}

// Get retrieves a session by id. Returns nil if the session does not exist.
func (r *RedisSessionStore) Get(ctx context.Context, sessionID string) (*domain.StudySession, error) {
	pipe := r.client.Pipeline()
	fields := pipe.HGetAll(ctx, r.sessionKey(sessionID))
	roster := pipe.ZRange(ctx, r.participantsKey(sessionID), 0, -1)
	if _, err := pipe.Exec(ctx); err != nil && err != goredis.Nil {
		return nil, fmt.Errorf("redis: failed to get session: %w", err)
	}

	if len(fields.Val()) == 0 {
		return nil, nil
	}
	return r.decode(sessionID, fields.Val(), roster.Val())
}

func (r *RedisSessionStore) decode(sessionID string, fields map[string]string, participants []string) (*domain.StudySession, error) {
	createdAt, err := domain.ParseTimestamp(fields[fieldCreatedAt])
	if err != nil {
		return nil, fmt.Errorf("redis: malformed created_at for session %s: %w", sessionID, err)
	}

	var payload json.RawMessage
	if raw := fields[fieldPayload]; raw != "" {
		payload = json.RawMessage(raw)
	}
	if participants == nil {
		participants = []string{}
	}

	active, err := strconv.ParseBool(fields[fieldIsActive])
	if err != nil {
		return nil, fmt.Errorf("redis: malformed is_active for session %s: %w", sessionID, err)
	}
	session := &domain.StudySession{
		SessionID:           sessionID,
		ContentKind:         domain.ContentKind(fields[fieldKind]),
		Payload:             payload,
		CreatedAt:           createdAt,
		IsActive:            active,
		Participants:        participants,
		SourceDeckName:      fields[fieldDeckName],
		SourceDeckSessionID: fields[fieldDeckSessionID],
	}
	session.AccessURL = domain.BuildAccessURL(r.baseURL, session.SessionID, session.ContentKind)
	return session, nil
}

// AddParticipant records participantID once per session.
func (r *RedisSessionStore) AddParticipant(ctx context.Context, sessionID, participantID string) (bool, error) {
	keys := []string{r.sessionKey(sessionID), r.participantsKey(sessionID)}
	added, err := joinScript.Run(ctx, r.client, keys, participantID).Int()
	if err != nil {
		return false, fmt.Errorf("redis: failed to add participant: %w", err)
	}
	return added == 1, nil
}

// ListParticipants returns the roster in join order.
func (r *RedisSessionStore) ListParticipants(ctx context.Context, sessionID string) ([]string, error) {
	participants, err := r.client.ZRange(ctx, r.participantsKey(sessionID), 0, -1).Result()
	if err != nil && err != goredis.Nil {
		return nil, fmt.Errorf("redis: failed to list participants: %w", err)
	}
	if participants == nil {
		participants = []string{}
	}
	return participants, nil
}

// Activate marks a session active.
func (r *RedisSessionStore) Activate(ctx context.Context, sessionID string) (bool, error) {
	return r.setActive(ctx, sessionID, true)
}

// Deactivate marks a session inactive.
func (r *RedisSessionStore) Deactivate(ctx context.Context, sessionID string) (bool, error) {
	return r.setActive(ctx, sessionID, false)
}

func (r *RedisSessionStore) setActive(ctx context.Context, sessionID string, active bool) (bool, error) {
	flag := "0"
	if active {
		flag = "1"
	}
	updated, err := setActiveScript.Run(ctx, r.client, []string{r.sessionKey(sessionID)}, flag).Int()
	if err != nil {
		return false, fmt.Errorf("redis: failed to update session: %w", err)
	}
	return updated == 1, nil
}

// Delete removes a session permanently.
func (r *RedisSessionStore) Delete(ctx context.Context, sessionID string) (bool, error) {
	var removed *goredis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		removed = pipe.Del(ctx, r.sessionKey(sessionID))
		pipe.Del(ctx, r.participantsKey(sessionID))
		pipe.ZRem(ctx, r.indexKey(), sessionID)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("redis: failed to delete session: %w", err)
	}
	return removed.Val() > 0, nil
}

// ListActive returns every active session.
func (r *RedisSessionStore) ListActive(ctx context.Context) ([]*domain.StudySession, error) {
	return r.list(ctx, true)
}

// ListAll returns every session.
func (r *RedisSessionStore) ListAll(ctx context.Context) ([]*domain.StudySession, error) {
	return r.list(ctx, false)
}

func (r *RedisSessionStore) list(ctx context.Context, activeOnly bool) ([]*domain.StudySession, error) {
	ids, err := r.client.ZRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil && err != goredis.Nil {
		return nil, fmt.Errorf("redis: failed to list sessions: %w", err)
	}

	result := make([]*domain.StudySession, 0, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	pipe := r.client.Pipeline()
	fields := make([]*goredis.MapStringStringCmd, len(ids))
	rosters := make([]*goredis.StringSliceCmd, len(ids))
	for i, id := range ids {
		fields[i] = pipe.HGetAll(ctx, r.sessionKey(id))
		rosters[i] = pipe.ZRange(ctx, r.participantsKey(id), 0, -1)
	}
	if _, err := pipe.Exec(ctx); err != nil && err != goredis.Nil {
		return nil, fmt.Errorf("redis: failed to load sessions: %w", err)
	}

	var stale []string
	for i, id := range ids {
		if len(fields[i].Val()) == 0 {
			// hash expired through its TTL before the sweep got to it
			stale = append(stale, id)
			continue
		}
		session, err := r.decode(id, fields[i].Val(), rosters[i].Val())
		if err != nil {
			return nil, err
		}
		if activeOnly && !session.IsActive {
			continue
		}
		result = append(result, session)
	}

	if len(stale) > 0 {
		if err := r.pruneIndex(ctx, stale); err != nil {
			return nil, err
		}
	}

	domain.SortSessions(result)
	return result, nil
}

func (r *RedisSessionStore) pruneIndex(ctx context.Context, ids []string) error {
	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, r.sessionKey(""))
	for _, id := range ids {
		args = append(args, id)
	}
	if err := pruneScript.Run(ctx, r.client, []string{r.indexKey()}, args...).Err(); err != nil {
		return fmt.Errorf("redis: failed to prune index: %w", err)
	}
	return nil
}

// SweepExpired removes sessions created before cutoff.
func (r *RedisSessionStore) SweepExpired(ctx context.Context, cutoff time.Time) (int, error) {
	removed, err := sweepScript.Run(ctx, r.client, []string{r.indexKey()},
		strconv.FormatInt(cutoff.UnixMilli(), 10),
		r.sessionKey(""),
		r.participantsKey(""),
	).Int()
	if err != nil {
		return 0, fmt.Errorf("redis: failed to sweep sessions: %w", err)
	}
	return removed, nil
}

// Ping checks the Redis connection.
func (r *RedisSessionStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (r *RedisSessionStore) Close() error {
	return r.client.Close()
}

// internal/matching/service.go

package matching

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"
)

var (
	ErrProfileNotFound   = errors.New("profile not found")
	ErrLikedUserNotFound = errors.New("liked user not found")
	ErrCannotLikeSelf    = errors.New("cannot like yourself")
	ErrAlreadyLiked      = errors.New("already liked this user")
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 50
)

// NotificationGateway delivers the "new match" notification to the other
// party. Failures are logged and never roll back the match.
type NotificationGateway interface {
	SendMatchNotification(ctx context.Context, toUserID int64, matchedFirstName string, matchID int64) error
}

type Service interface {
	// GetDiscoveryCards builds the paged, distance-sorted candidate feed
	// for a viewer. Read-only and safe to retry.
	GetDiscoveryCards(ctx context.Context, viewerID int64, params *DiscoveryParams) ([]*DiscoveryCard, error)

	// SwipeLike records a directed like and, when interest is mutual,
	// creates the match for the unordered pair exactly once.
	SwipeLike(ctx context.Context, viewerID, likedUserID int64) (*SwipeResult, error)

	// GetMatches lists the viewer's matches with the other participant's
	// info attached.
	GetMatches(ctx context.Context, userID int64) ([]*Match, error)
}

type service struct {
	repo     Repository
	catalog  *SportCatalog
	notifier NotificationGateway
}

func NewService(repo Repository, catalog *SportCatalog, notifier NotificationGateway) Service {
	return &service{
		repo:     repo,
		catalog:  catalog,
		notifier: notifier,
	}
}

func (s *service) GetDiscoveryCards(ctx context.Context, viewerID int64, params *DiscoveryParams) ([]*DiscoveryCard, error) {
	params = params.normalized()

	viewer, err := s.repo.GetProfileByUserID(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	excluded, err := s.exclusionSet(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	pool, err := s.repo.GetAllProfilesWithSports(ctx)
	if err != nil {
		return nil, err
	}

	sportNames, err := s.catalog.Names(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sport catalog: %w", err)
	}

	var cards []*DiscoveryCard
	for _, candidate := range pool {
		if _, skip := excluded[candidate.UserID]; skip {
			continue
		}
		if card, ok := BuildDiscoveryCard(viewer, candidate, sportNames, params.SportID); ok {
			cards = append(cards, card)
		}
	}

	// Ascending distance, ties broken by user id for a deterministic feed
	sort.SliceStable(cards, func(i, j int) bool {
		if cards[i].DistanceKm != cards[j].DistanceKm {
			return cards[i].DistanceKm < cards[j].DistanceKm
		}
		return cards[i].UserID < cards[j].UserID
	})

	page := paginate(cards, params.PageNumber, params.PageSize)
	RecordDiscoveryPage(len(page))
	return page, nil
}

// exclusionSet is the set of user ids the viewer must never see again:
// already liked, already matched, and the viewer itself
func (s *service) exclusionSet(ctx context.Context, viewerID int64) (map[int64]struct{}, error) {
	likedIDs, err := s.repo.GetLikedUserIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	matchedIDs, err := s.repo.GetMatchedUserIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	excluded := make(map[int64]struct{}, len(likedIDs)+len(matchedIDs)+1)
	excluded[viewerID] = struct{}{}
	for _, id := range likedIDs {
		excluded[id] = struct{}{}
	}
	for _, id := range matchedIDs {
		excluded[id] = struct{}{}
	}
	return excluded, nil
}

func paginate(cards []*DiscoveryCard, pageNumber, pageSize int) []*DiscoveryCard {
	start := (pageNumber - 1) * pageSize
	if start >= len(cards) {
		return []*DiscoveryCard{}
	}
	end := start + pageSize
	if end > len(cards) {
		end = len(cards)
	}
	return cards[start:end]
}

func (s *service) SwipeLike(ctx context.Context, viewerID, likedUserID int64) (*SwipeResult, error) {
	if viewerID == likedUserID {
		return nil, ErrCannotLikeSelf
	}

	target, err := s.repo.GetProfileByUserID(ctx, likedUserID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, ErrLikedUserNotFound
		}
		return nil, err
	}

	alreadyLiked, err := s.repo.LikeExists(ctx, viewerID, likedUserID)
	if err != nil {
		return nil, err
	}
	if alreadyLiked {
		return nil, ErrAlreadyLiked
	}

	like := &Like{LikerID: viewerID, LikedID: likedUserID}
	created, err := s.repo.CreateLike(ctx, like)
	if err != nil {
		return nil, err
	}
	if !created {
		// A concurrent request won the insert
		return nil, ErrAlreadyLiked
	}
	RecordLike()

	reciprocal, err := s.repo.LikeExists(ctx, likedUserID, viewerID)
	if err != nil {
		return nil, err
	}
	if !reciprocal {
		return &SwipeResult{IsMatch: false}, nil
	}

	match := &Match{User1ID: viewerID, User2ID: likedUserID}
	if err := s.repo.CreateMatch(ctx, match); err != nil {
		return nil, err
	}
	RecordMatch()

	s.notifyMatchAsync(viewerID, likedUserID, match.ID)

	matchID := match.ID
	return &SwipeResult{
		IsMatch:         true,
		MatchID:         &matchID,
		MatchedUserName: target.FirstName,
	}, nil
}

// notifyMatchAsync tells the earlier liker about the new match. Best
// effort: failures are logged and do not affect the swipe outcome.
func (s *service) notifyMatchAsync(swiperID, otherUserID, matchID int64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		swiper, err := s.repo.GetProfileByUserID(ctx, swiperID)
		if err != nil {
			log.Printf("match notification skipped, swiper profile unavailable: %v", err)
			return
		}

		if err := s.notifier.SendMatchNotification(ctx, otherUserID, swiper.FirstName, matchID); err != nil {
			log.Printf("failed to send match notification to user %d: %v", otherUserID, err)
		}
	}()
}

func (s *service) GetMatches(ctx context.Context, userID int64) ([]*Match, error) {
	return s.repo.GetUserMatches(ctx, userID)
}

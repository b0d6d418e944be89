package services

import "modahaus/internal/repos"

// FavoritesService follows the cart's auth rule: favorites belong to a
// signed-in user, anonymous visitors get a sign-in prompt.
type FavoritesService struct {
	Repo *repos.FavoritesRepo
}

func NewFavoritesService(r *repos.FavoritesRepo) *FavoritesService { return &FavoritesService{Repo: r} }

func (s *FavoritesService) Save(userID, productID string) error {
	if userID == "" {
		return ErrSignInRequired
	}
	return s.Repo.Add(userID, productID)
}

func (s *FavoritesService) Unsave(userID, productID string) error {
	if userID == "" {
		return ErrSignInRequired
	}
	return s.Repo.Remove(userID, productID)
}

func (s *FavoritesService) List(userID string) ([]repos.FavoriteRow, error) {
	if userID == "" {
		return nil, ErrSignInRequired
	}
	return s.Repo.List(userID)
}

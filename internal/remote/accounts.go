package remote

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/auth"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/checkout"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/pricing"
)

// AccountsClient talks to the accounts/order service. It satisfies auth.API
// and checkout.OrderAPI.
type AccountsClient struct {
	c *Client
}

func NewAccountsClient(c *Client) *AccountsClient {
	return &AccountsClient{c: c}
}

type loginDTO struct {
	Token   string `json:"token"`
	Account struct {
		ID        int64  `json:"id"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Company   string `json:"company"`
		Role      string `json:"role"`
	} `json:"account"`
}

func (ac *AccountsClient) Login(ctx context.Context, email, password string) (auth.Account, string, error) {
	body := map[string]string{"email": email, "password": password}
	var dto loginDTO
	if err := ac.c.doJSON(ctx, http.MethodPost, "/api/auth/login/", "", body, &dto); err != nil {
		return auth.Account{}, "", err
	}
	account := auth.Account{
		ID:        dto.Account.ID,
		Email:     dto.Account.Email,
		FirstName: dto.Account.FirstName,
		LastName:  dto.Account.LastName,
		Company:   dto.Account.Company,
		Role:      pricing.Role(dto.Account.Role),
	}
	return account, dto.Token, nil
}

func (ac *AccountsClient) Logout(ctx context.Context, token string) error {
	return ac.c.doJSON(ctx, http.MethodPost, "/api/auth/logout/", token, nil, nil)
}

type confirmationDTO struct {
	OrderID    int64     `json:"order_id"`
	Number     string    `json:"number"`
	TotalCents int64     `json:"total_cents"`
	CreatedAt  time.Time `json:"created_at"`
}

func (ac *AccountsClient) CreateOrder(ctx context.Context, token string, draft checkout.Draft) (checkout.Confirmation, error) {
	var dto confirmationDTO
	if err := ac.c.doJSON(ctx, http.MethodPost, "/api/orders/", token, draft, &dto); err != nil {
		return checkout.Confirmation{}, err
	}
	return checkout.Confirmation(dto), nil
}

type historyDTO struct {
	Count   int                    `json:"count"`
	Results []checkout.HistoryItem `json:"results"`
}

func (ac *AccountsClient) Orders(ctx context.Context, token string, page, pageSize int) (checkout.HistoryPage, error) {
	params := "?page=" + strconv.Itoa(page) + "&page_size=" + strconv.Itoa(pageSize)
	var dto historyDTO
	if err := ac.c.doJSON(ctx, http.MethodGet, "/api/orders/"+params, token, nil, &dto); err != nil {
		return checkout.HistoryPage{}, err
	}
	return checkout.HistoryPage{Items: dto.Results, Total: dto.Count}, nil
}

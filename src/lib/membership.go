package lib

import (
	"context"
	"encoding/json"
	"etb/src/config"
	"etb/src/types"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// MembershipClient reads membership state from the membership service. The
// saga fetches this fresh on every purchase; nothing is cached or persisted.
type MembershipClient struct {
	baseURL string
	hc      *http.Client
}

var membershipClient *MembershipClient

func GetMembershipClient() *MembershipClient {
	if membershipClient != nil {
		return membershipClient
	}
	membershipClient = &MembershipClient{
		baseURL: config.MembershipAPIURL(),
		hc: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	return membershipClient
}

// NewMembershipClient Replace membership client instance with custom implementation
func NewMembershipClient(c *MembershipClient) {
	membershipClient = c
}

func (c *MembershipClient) GetUserMembershipInfo(ctx context.Context, userID string) (*types.MembershipInfo, error) {
	endpoint := fmt.Sprintf("%s/users/%s/membership", c.baseURL, url.PathEscape(userID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	// An unknown user simply has no membership
	if resp.StatusCode == http.StatusNotFound {
		return &types.MembershipInfo{HasMembership: false}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("membership api: unexpected status %d", resp.StatusCode)
	}
	var info types.MembershipInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

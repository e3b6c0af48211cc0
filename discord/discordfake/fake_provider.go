package discordfake

import (
	"context"
	"sync"

	"github.com/cyberacme/auth-edge/auth"
	"github.com/cyberacme/auth-edge/discord"
)

var _ auth.Provider = (*FakeProvider)(nil)

type ExchangeCall struct {
	Code        string
	RedirectURI string
}

// FakeProvider answers with canned tokens and users and records every call.
type FakeProvider struct {
	Tokens       *discord.TokenResponse
	User         *discord.User
	ExchangeErr  error
	FetchUserErr error

	exchangeCalls  []ExchangeCall
	fetchUserCalls []string
	lock           sync.Mutex
}

func NewFakeProvider(tokens *discord.TokenResponse, user *discord.User) *FakeProvider {
	return &FakeProvider{
		Tokens: tokens,
		User:   user,
	}
}

func (p *FakeProvider) Exchange(_ context.Context, code, redirectURI string) (*discord.TokenResponse, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.exchangeCalls = append(p.exchangeCalls, ExchangeCall{Code: code, RedirectURI: redirectURI})
	if p.ExchangeErr != nil {
		return nil, p.ExchangeErr
	}
	tokens := *p.Tokens
	return &tokens, nil
}

func (p *FakeProvider) FetchUser(_ context.Context, accessToken string) (*discord.User, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.fetchUserCalls = append(p.fetchUserCalls, accessToken)
	if p.FetchUserErr != nil {
		return nil, p.FetchUserErr
	}
	user := *p.User
	return &user, nil
}

func (p *FakeProvider) ExchangeCalls() []ExchangeCall {
	p.lock.Lock()
	defer p.lock.Unlock()
	return append([]ExchangeCall(nil), p.exchangeCalls...)
}

func (p *FakeProvider) FetchUserCalls() []string {
	p.lock.Lock()
	defer p.lock.Unlock()
	return append([]string(nil), p.fetchUserCalls...)
}

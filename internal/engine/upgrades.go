package engine

import (
	"github.com/roach88/streamtv/internal/model"
	"github.com/roach88/streamtv/internal/session"
)

func (e *Engine) buyTokens(op BuyTokens) []model.Record {
	if e.session.Page() != session.Upgrades {
		return e.reject(op, "not on the upgrades page")
	}
	if !e.session.BuyTokens(op.Count) {
		return e.reject(op, "insufficient balance")
	}
	return nil
}

func (e *Engine) buyPremium() []model.Record {
	op := BuyPremium{}
	if e.session.Page() != session.Upgrades {
		return e.reject(op, "not on the upgrades page")
	}
	if !e.session.BuyPremiumAccount() {
		return e.reject(op, "insufficient tokens")
	}
	return nil
}

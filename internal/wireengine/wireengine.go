// Package wireengine adapts the matching engine in internal/book to the
// wire-facing internal/net.Engine contract: one book.Book per asset type,
// plus the owner/ticker metadata the wire protocol carries that a bare
// book.Order does not.
package wireengine

import (
	"errors"
	"sync"
	"time"

	"fenrir/internal/book"
	"fenrir/internal/common"

	"github.com/rs/zerolog/log"
)

var (
	ErrUnknownAsset = errors.New("wireengine: unknown asset type")
	ErrUnknownOrder = errors.New("wireengine: unknown order id")
)

// Reporter is notified of trades as they occur. The TCP server implements
// this to turn fills into execution reports.
type Reporter interface {
	ReportTrade(trade common.Trade, err error) error
}

// Engine routes wire orders into one book per asset type and reports fills
// back out through a Reporter.
type Engine struct {
	books map[common.AssetType]*book.Book

	mu       sync.Mutex
	orders   map[string]common.Order
	reporter Reporter
	tsSeq    int64
}

// New constructs an engine with one fresh book per supported asset.
func New(assets ...common.AssetType) *Engine {
	e := &Engine{
		books:  make(map[common.AssetType]*book.Book),
		orders: make(map[string]common.Order),
	}
	for _, asset := range assets {
		e.books[asset] = book.New()
	}
	return e
}

// SetReporter wires the trade sink. The server cannot be constructed
// without an engine and the engine cannot report without a server, so this
// breaks the cycle: construct the engine, construct the server with it,
// then call SetReporter.
func (e *Engine) SetReporter(r Reporter) {
	e.reporter = r
}

func (e *Engine) nextTS() int64 {
	e.tsSeq++
	return e.tsSeq
}

// PlaceOrder dispatches a wire order to the book for its asset type,
// picking place_limit or place_market by the order's Kind, and reports one
// trade per fill produced.
func (e *Engine) PlaceOrder(assetType common.AssetType, order common.Order) error {
	b, ok := e.books[assetType]
	if !ok {
		return ErrUnknownAsset
	}

	order.Timestamp = time.Now()
	order.ExchTimestamp = order.Timestamp
	order.TotalQuantity = order.Quantity

	price := order.LimitPrice
	if order.OrderType == common.MarketOrder {
		price = 1.0
	}

	bo, err := book.NewOrder(order.UUID, order.Side, order.OrderType, price, order.Quantity, e.nextTS())
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.orders[order.UUID] = order
	e.mu.Unlock()

	var fills []book.Fill
	if order.OrderType == common.MarketOrder {
		res, err := b.PlaceMarket(bo)
		if err != nil {
			return err
		}
		fills = res.Fills
	} else {
		fills, err = b.PlaceLimit(bo)
		if err != nil {
			return err
		}
	}

	for _, f := range fills {
		e.reportFill(f)
	}
	return nil
}

// reportFill looks up wire metadata for both sides of a fill and reports a
// Trade. A fill whose taker or maker has no recorded metadata is logged and
// skipped rather than reported with a zero-value counterparty. Metadata is
// recorded for every order PlaceOrder accepts and dropped only by
// CancelOrder; a fill does not remove it.
func (e *Engine) reportFill(f book.Fill) {
	if e.reporter == nil {
		return
	}

	e.mu.Lock()
	taker, takerOk := e.orders[f.TakerOrderID]
	maker, makerOk := e.orders[f.MakerOrderID]
	e.mu.Unlock()

	if !takerOk || !makerOk {
		log.Warn().
			Str("taker", f.TakerOrderID).
			Str("maker", f.MakerOrderID).
			Msg("fill reported for order missing wire metadata")
		return
	}

	trade := common.Trade{
		Party:        &taker,
		CounterParty: &maker,
		Timestamp:    time.Now(),
		MatchQty:     f.Qty,
		Price:        f.Price,
	}
	if err := e.reporter.ReportTrade(trade, nil); err != nil {
		log.Error().Err(err).Msg("failed to report trade")
	}
}

// CancelOrder forwards a cancel to the asset's book and drops the wire
// metadata. An unknown id is not an error.
func (e *Engine) CancelOrder(assetType common.AssetType, uuid string) error {
	b, ok := e.books[assetType]
	if !ok {
		return ErrUnknownAsset
	}

	b.Cancel(uuid)

	e.mu.Lock()
	delete(e.orders, uuid)
	e.mu.Unlock()
	return nil
}

// LogBook emits a debug snapshot of every asset's book.
func (e *Engine) LogBook() {
	for asset, b := range e.books {
		log.Debug().Int("assetType", int(asset)).Msg("logging book")
		b.LogBook()
	}
}

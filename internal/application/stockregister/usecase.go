// Package stockregister orquesta el registro de stock: lee las cuatro fuentes de
// movimientos, las normaliza y arma resúmenes, listados, rankings y archivos.
package stockregister

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Despacho-api/internal/application/dto"
	"github.com/jhoicas/Despacho-api/internal/domain"
	"github.com/jhoicas/Despacho-api/internal/domain/entity"
	"github.com/jhoicas/Despacho-api/internal/domain/repository"
	"github.com/jhoicas/Despacho-api/internal/domain/stock"
)

const (
	defaultTopN = 10
	maxTopN     = 100
)

// Options ajustes opcionales del caso de uso.
type Options struct {
	// DefaultStart inicio fijo de la ventana por defecto (YYYY-MM-DD). Vacío = primer día del mes.
	DefaultStart string
	// Now reloj para los defaults de ventana; nil = time.Now.
	Now func() time.Time
}

// UseCase casos de uso del registro de stock.
type UseCase struct {
	events   repository.EventSourceRepository
	writer   repository.SourceWriter
	parser   SheetParser
	renderer ReportRenderer
	cache    SummaryCache
	log      zerolog.Logger
	opts     Options
}

// New construye el caso de uso. cache puede ser nil (sin memoización).
func New(
	events repository.EventSourceRepository,
	writer repository.SourceWriter,
	parser SheetParser,
	renderer ReportRenderer,
	cache SummaryCache,
	log zerolog.Logger,
	opts Options,
) *UseCase {
	if cache == nil {
		cache = noopCache{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &UseCase{
		events:   events,
		writer:   writer,
		parser:   parser,
		renderer: renderer,
		cache:    cache,
		log:      log,
		opts:     opts,
	}
}

// ── Resumen ───────────────────────────────────────────────────────────────────

// Summary registro de stock del período: saldo previo, entradas, salidas y saldo final por código.
func (uc *UseCase) Summary(ctx context.Context, q dto.StockQuery) (*dto.StockSummaryDTO, error) {
	w, err := uc.window(q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}
	filter := stock.NewCodeFilter(q.Code)
	code := strings.TrimSpace(q.Code)

	// La generación se fija antes de leer las fuentes y se reusa al guardar.
	key := "summary:" + w.String() + ":" + filter.Key()
	gen, err := uc.cache.Generation(ctx)
	useCache := err == nil
	if err != nil {
		uc.log.Warn().Err(err).Msg("caché no disponible; se recalcula")
	}
	if useCache {
		var cached dto.StockSummaryDTO
		found, err := uc.cache.Get(ctx, gen, key, &cached)
		if err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("caché no disponible; se recalcula")
		}
		if found {
			uc.log.Debug().Str("key", key).Int64("gen", gen).Msg("resumen desde caché")
			cached.Code = code
			return &cached, nil
		}
	}

	events, err := uc.loadEvents(ctx, entity.AllSources...)
	if err != nil {
		return nil, err
	}
	rows := stock.NewLedger(stock.FilterEvents(events, filter)).Summarize(w)
	out := buildSummary(w, code, rows)

	if useCache {
		if err := uc.cache.Set(ctx, gen, key, out); err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("no se pudo guardar el resumen en caché")
		}
	}
	return out, nil
}

func buildSummary(w stock.Window, code string, rows []entity.PeriodSummary) *dto.StockSummaryDTO {
	out := &dto.StockSummaryDTO{
		Period: period(w),
		Code:   code,
		Rows:   make([]dto.StockSummaryRowDTO, 0, len(rows)),
	}
	for _, r := range rows {
		out.Rows = append(out.Rows, dto.StockSummaryRowDTO{
			Code:          r.Code,
			PreviousStock: r.PreviousStock,
			TotalReceived: r.TotalReceived,
			TotalSold:     r.TotalSold,
			EndingStock:   r.EndingStock,
		})
		out.Totals.PreviousStock = out.Totals.PreviousStock.Add(r.PreviousStock)
		out.Totals.TotalReceived = out.Totals.TotalReceived.Add(r.TotalReceived)
		out.Totals.TotalSold = out.Totals.TotalSold.Add(r.TotalSold)
		out.Totals.EndingStock = out.Totals.EndingStock.Add(r.EndingStock)
	}
	out.Totals.Products = len(rows)
	return out
}

// ── Saldos diarios ────────────────────────────────────────────────────────────

// Balances serie de saldos acumulados de un código. Sin fechas devuelve la historia completa;
// con alguna fecha, sólo los días dentro de la ventana (el acumulado sigue contando desde el origen).
func (uc *UseCase) Balances(ctx context.Context, code string, q dto.StockQuery) (*dto.BalanceHistoryDTO, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("code requerido: %w", domain.ErrInvalidInput)
	}
	var w *stock.Window
	if q.StartDate != "" || q.EndDate != "" {
		win, err := uc.window(q.StartDate, q.EndDate)
		if err != nil {
			return nil, err
		}
		w = &win
	}

	events, err := uc.loadEvents(ctx, entity.AllSources...)
	if err != nil {
		return nil, err
	}
	history := stock.NewLedger(events).History(code)
	if len(history) == 0 {
		return nil, fmt.Errorf("código %q: %w", code, domain.ErrNotFound)
	}

	out := &dto.BalanceHistoryDTO{Code: code, Points: make([]dto.BalancePointDTO, 0, len(history))}
	if w != nil {
		p := period(*w)
		out.Period = &p
	}
	for _, b := range history {
		if w != nil && !w.Contains(b.AsOfDate) {
			continue
		}
		out.Points = append(out.Points, dto.BalancePointDTO{
			Date:               b.AsOfDate.Format(stock.DateLayout),
			Inflow:             b.Inflow,
			Outflow:            b.Outflow,
			CumulativeQuantity: b.CumulativeQuantity,
		})
	}
	return out, nil
}

// ── Listados por fuente ───────────────────────────────────────────────────────

// SourceListing movimientos de una fuente agregados por día y código, con la cantidad registrada.
func (uc *UseCase) SourceListing(ctx context.Context, source entity.EventSource, q dto.StockQuery) (*dto.SourceListingDTO, error) {
	if !source.Valid() {
		return nil, fmt.Errorf("fuente %q: %w", source, domain.ErrUnknownSource)
	}
	w, err := uc.window(q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}
	events, err := uc.loadEvents(ctx, source)
	if err != nil {
		return nil, err
	}

	daily := stock.DailyTotals(events, source, w, stock.NewCodeFilter(q.Code))
	out := &dto.SourceListingDTO{
		Source: string(source),
		Label:  source.Label(),
		Period: period(w),
		Code:   strings.TrimSpace(q.Code),
		Rows:   make([]dto.SourceRowDTO, 0, len(daily)),
	}
	codes := make(map[string]struct{})
	for _, d := range daily {
		out.Rows = append(out.Rows, dto.SourceRowDTO{
			Date:     d.Date.Format(stock.DateLayout),
			Code:     d.Code,
			Quantity: d.Quantity,
		})
		out.TotalQuantity = out.TotalQuantity.Add(d.Quantity)
		codes[d.Code] = struct{}{}
	}
	out.UniqueProducts = len(codes)
	return out, nil
}

// ── Top despachados ───────────────────────────────────────────────────────────

// TopDispatched códigos con más unidades vendidas en la ventana.
func (uc *UseCase) TopDispatched(ctx context.Context, q dto.StockQuery) (*dto.TopDispatchedDTO, error) {
	w, err := uc.window(q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}
	topN := q.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	if topN > maxTopN {
		topN = maxTopN
	}

	events, err := uc.loadEvents(ctx, entity.SourceSales)
	if err != nil {
		return nil, err
	}
	top := stock.TopBySource(events, entity.SourceSales, w, topN)

	out := &dto.TopDispatchedDTO{Period: period(w), TopN: topN, Items: make([]dto.TopItemDTO, 0, len(top))}
	for i, cq := range top {
		out.Items = append(out.Items, dto.TopItemDTO{Rank: i + 1, Code: cq.Code, Quantity: cq.Quantity})
	}
	return out, nil
}

// ── Exportaciones ─────────────────────────────────────────────────────────────

// ExportSummary resumen del período como CSV, XLSX o PDF.
func (uc *UseCase) ExportSummary(ctx context.Context, q dto.StockQuery, format ExportFormat) (*ExportFile, error) {
	summary, err := uc.Summary(ctx, q)
	if err != nil {
		return nil, err
	}
	data, err := uc.renderer.RenderSummary(ctx, format, summary)
	if err != nil {
		return nil, fmt.Errorf("exportar resumen: %w", err)
	}
	return &ExportFile{
		Name:        fmt.Sprintf("inventory_summary_%s_%s.%s", summary.Period.StartDate, summary.Period.EndDate, format),
		ContentType: format.ContentType(),
		Data:        data,
	}, nil
}

// ExportSource listado de una fuente como CSV o XLSX.
func (uc *UseCase) ExportSource(ctx context.Context, source entity.EventSource, q dto.StockQuery, format ExportFormat) (*ExportFile, error) {
	if format == FormatPDF {
		return nil, fmt.Errorf("los listados por fuente se exportan en csv o xlsx: %w", domain.ErrInvalidInput)
	}
	listing, err := uc.SourceListing(ctx, source, q)
	if err != nil {
		return nil, err
	}
	data, err := uc.renderer.RenderSource(ctx, format, listing)
	if err != nil {
		return nil, fmt.Errorf("exportar %s: %w", source, err)
	}
	return &ExportFile{
		Name:        fmt.Sprintf("%s_%s_%s.%s", source, listing.Period.StartDate, listing.Period.EndDate, format),
		ContentType: format.ContentType(),
		Data:        data,
	}, nil
}

// ── Importación ───────────────────────────────────────────────────────────────

// Import carga una planilla en la tabla de la fuente e invalida la caché de resúmenes.
func (uc *UseCase) Import(ctx context.Context, source entity.EventSource, r io.Reader, filename string, opts ImportOptions) (*dto.ImportResultDTO, error) {
	if !source.Valid() {
		return nil, fmt.Errorf("fuente %q: %w", source, domain.ErrUnknownSource)
	}
	parsed, err := uc.parser.Parse(r, filename, source, opts)
	if err != nil {
		return nil, err
	}
	if len(parsed.Rows) == 0 {
		return nil, fmt.Errorf("%s no tiene filas válidas: %w", filename, domain.ErrInvalidInput)
	}

	batchID := uuid.New().String()
	log := uc.log.With().Str("batch_id", batchID).Str("source", string(source)).Str("file", filename).Logger()

	inserted, err := uc.writer.WriteRows(ctx, source, parsed.Rows, opts.Replace)
	if err != nil {
		return nil, fmt.Errorf("importar %s: %w", source, err)
	}
	if err := uc.cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("no se pudo invalidar la caché de resúmenes")
	}

	log.Info().
		Int64("inserted", inserted).
		Int("missing_code", parsed.MissingCode).
		Int("bad_date", parsed.BadDate).
		Int("null_quantity", parsed.NullQuantity).
		Bool("replace", opts.Replace).
		Msg("importación completada")

	return &dto.ImportResultDTO{
		BatchID:      batchID,
		Source:       string(source),
		FileName:     filename,
		Inserted:     inserted,
		MissingCode:  parsed.MissingCode,
		BadDate:      parsed.BadDate,
		NullQuantity: parsed.NullQuantity,
		Replaced:     opts.Replace,
	}, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

// loadEvents lee las fuentes en paralelo y las normaliza. Cualquier fallo de lectura
// se informa como domain.ErrDataUnavailable: no se arman resultados parciales.
func (uc *UseCase) loadEvents(ctx context.Context, sources ...entity.EventSource) ([]entity.InventoryEvent, error) {
	batches := make([][]entity.SourceRecord, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			recs, err := uc.events.ListRecords(gctx, src)
			if err != nil {
				return fmt.Errorf("%s: %w", src, err)
			}
			batches[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDataUnavailable, err)
	}

	var events []entity.InventoryEvent
	var report stock.NormalizeReport
	for _, recs := range batches {
		evs, rep := stock.Normalize(recs)
		events = append(events, evs...)
		report.Add(rep)
	}

	ev := uc.log.Debug()
	if report.Dropped() > 0 || report.ZeroedQuantity > 0 {
		ev = uc.log.Warn()
	}
	ev.Int("accepted", report.Accepted).
		Int("missing_code", report.MissingCode).
		Int("bad_date", report.BadDate).
		Int("unknown_source", report.UnknownSource).
		Int("zeroed_quantity", report.ZeroedQuantity).
		Msg("movimientos normalizados")
	return events, nil
}

// window aplica los defaults (inicio del mes o DefaultStart, hasta hoy) y valida el orden.
func (uc *UseCase) window(startStr, endStr string) (stock.Window, error) {
	now := uc.opts.Now()
	if endStr == "" {
		endStr = now.Format(stock.DateLayout)
	}
	if startStr == "" {
		startStr = uc.opts.DefaultStart
	}
	if startStr == "" {
		startStr = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format(stock.DateLayout)
	}
	return stock.ParseWindow(startStr, endStr)
}

func period(w stock.Window) dto.PeriodDTO {
	return dto.PeriodDTO{
		StartDate: w.Start.Format(stock.DateLayout),
		EndDate:   w.End.Format(stock.DateLayout),
	}
}

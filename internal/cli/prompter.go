package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/jvaldes/hucha/internal/model"
	"github.com/jvaldes/hucha/internal/session"
)

// Prompter implements session.Prompter over a terminal: one transaction at a
// time, a suggestion line, and single-character decisions mirroring the
// prompts the operators already know.
type Prompter struct {
	reader   *LineReader
	writer   io.Writer
	progress *progressbar.ProgressBar
}

// NewPrompter creates a prompter with the given reader and writer. Nil
// arguments default to stdin and stdout.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &Prompter{
		reader: NewLineReader(reader),
		writer: writer,
	}
}

// SessionStarted prints the options banner and sets up the progress bar.
func (p *Prompter) SessionStarted(total int) {
	divider := strings.Repeat("=", 70)
	fmt.Fprintf(p.writer, "\n📊 Encontradas %d transacciones sin categorizar\n\n", total)
	fmt.Fprintln(p.writer, divider)
	fmt.Fprintln(p.writer, FormatPrompt("Opciones: [Enter]=Aceptar | [n]=Otra categoría | [s]=Saltar | [q]=Salir"))
	fmt.Fprintln(p.writer, divider)

	p.progress = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionSetDescription("Revisadas"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

// ReviewSuggestion presents a suggested category and reads the decision.
// Empty input accepts; any other non-reserved input opens the category list.
func (p *Prompter) ReviewSuggestion(ctx context.Context, review session.Review) (model.Decision, error) {
	p.printTransaction(review)
	fmt.Fprintf(p.writer, "         %s Sugerencia (%s): %s\n",
		HintIcon, sourceLabel(review.Suggestion.Source), TitleStyle.Render(review.Suggestion.Category))

	fmt.Fprint(p.writer, FormatPrompt("         ¿Aceptar? [Enter/n/s/q]: "))
	input, err := p.reader.ReadLine(ctx)
	if err != nil {
		return model.DecisionQuit, err
	}

	p.advance()
	switch strings.ToLower(input) {
	case "":
		return model.DecisionAccept, nil
	case "q":
		fmt.Fprintf(p.writer, "\n%s  Categorización interrumpida\n", StopIcon)
		return model.DecisionQuit, nil
	case "s":
		fmt.Fprintf(p.writer, "         %s  Saltada\n", SkipIcon)
		return model.DecisionSkip, nil
	default:
		return model.DecisionChooseOther, nil
	}
}

// ReviewUnmatched presents a transaction without a suggestion. Accept here
// means the operator wants to pick the category manually.
func (p *Prompter) ReviewUnmatched(ctx context.Context, review session.Review) (model.Decision, error) {
	p.printTransaction(review)
	fmt.Fprintf(p.writer, "         %s\n", FormatWarning("Sin sugerencia automática"))

	fmt.Fprint(p.writer, FormatPrompt("         ¿Categorizar manualmente? [s/N/q]: "))
	input, err := p.reader.ReadLine(ctx)
	if err != nil {
		return model.DecisionQuit, err
	}

	p.advance()
	switch strings.ToLower(input) {
	case "q":
		fmt.Fprintf(p.writer, "\n%s  Categorización interrumpida\n", StopIcon)
		return model.DecisionQuit, nil
	case "s":
		return model.DecisionAccept, nil
	default:
		return model.DecisionSkip, nil
	}
}

// SelectCategory shows the numbered category list and reads a 1-based pick.
// Blank, non-numeric, or out-of-range input cancels the selection.
func (p *Prompter) SelectCategory(ctx context.Context, categories []string) (string, bool, error) {
	fmt.Fprintln(p.writer, "\n         Categorías disponibles:")
	for i, cat := range categories {
		fmt.Fprintf(p.writer, "         %2d. %s\n", i+1, cat)
	}

	fmt.Fprint(p.writer, FormatPrompt("\n         Número de categoría (o Enter para cancelar): "))
	input, err := p.reader.ReadLine(ctx)
	if err != nil {
		return "", false, err
	}
	if input == "" {
		return "", false, nil
	}

	idx, err := strconv.Atoi(input)
	if err != nil || idx < 1 || idx > len(categories) {
		return "", false, nil
	}
	return categories[idx-1], true, nil
}

// ConfirmRule offers to persist a keyword rule, with an editable default
// keyword when one could be extracted from the payee.
func (p *Prompter) ConfirmRule(ctx context.Context, _ string, suggestedKeyword string) (string, bool, error) {
	fmt.Fprint(p.writer, FormatPrompt("         ¿Guardar regla para el futuro? [s/N]: "))
	input, err := p.reader.ReadLine(ctx)
	if err != nil {
		return "", false, err
	}
	if strings.ToLower(input) != "s" {
		return "", false, nil
	}

	if suggestedKeyword != "" {
		fmt.Fprint(p.writer, FormatPrompt(fmt.Sprintf("         Palabra clave [%s]: ", suggestedKeyword)))
		custom, readErr := p.reader.ReadLine(ctx)
		if readErr != nil {
			return "", false, readErr
		}
		if custom != "" {
			return custom, true, nil
		}
		return suggestedKeyword, true, nil
	}

	fmt.Fprint(p.writer, FormatPrompt("         Introduce palabra clave: "))
	custom, readErr := p.reader.ReadLine(ctx)
	if readErr != nil {
		return "", false, readErr
	}
	if custom == "" {
		return "", false, nil
	}
	return custom, true, nil
}

// ApplyResult reports the outcome of one category update.
func (p *Prompter) ApplyResult(_ model.Transaction, category string, err error) {
	if err != nil {
		fmt.Fprintf(p.writer, "         %s\n", FormatError("Error al actualizar"))
		return
	}
	fmt.Fprintf(p.writer, "         %s\n", FormatSuccess("Categorizada como: "+category))
}

// SessionFinished prints the closing summary.
func (p *Prompter) SessionFinished(stats model.SessionStats) {
	if p.progress != nil {
		_ = p.progress.Finish()
	}
	if stats.Total == 0 {
		fmt.Fprintf(p.writer, "\n%s\n", FormatSuccess("¡No hay transacciones sin categorizar!"))
		return
	}

	divider := strings.Repeat("=", 70)
	fmt.Fprintln(p.writer, "\n"+divider)
	fmt.Fprintf(p.writer, "📈 RESUMEN: %d categorizadas, %d saltadas\n", stats.Categorized, stats.Skipped)
	fmt.Fprintln(p.writer, divider)
}

func (p *Prompter) printTransaction(review session.Review) {
	tx := review.Transaction
	payee := tx.PayeeName
	if payee == "" {
		payee = "Sin nombre"
	}
	fmt.Fprintf(p.writer, "\n[%d/%d] %s | %s\n", review.Index, review.Total, tx.Date, payee)
	fmt.Fprintf(p.writer, "         Importe: €%.2f\n", tx.Amount())
}

func (p *Prompter) advance() {
	if p.progress != nil {
		_ = p.progress.Add(1)
	}
}

func sourceLabel(source model.SuggestionSource) string {
	if source == model.SourceRule {
		return "reglas"
	}
	return "IA"
}

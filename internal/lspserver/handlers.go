package lspserver

import (
	"context"
	"encoding/json"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"

	"github.com/kieli-lang/kieli/internal/compiler/diag"
	"github.com/kieli-lang/kieli/internal/compiler/source"
	"github.com/kieli-lang/kieli/internal/compiler/tooling"
)

// semanticTokensLegend is advertised once at initialize time; token
// indices returned by handleSemanticTokensFull are positions into this
// slice, per the LSP delta-encoding scheme (§6.3).
var semanticTokensLegend = protocol.SemanticTokensLegend{
	TokenTypes: []string{
		"keyword", "comment", "number", "string", "operator", "type",
		"enumMember", "interface", "struct", "parameter", "variable",
		"property", "function", "method", "namespace", "macro", "module", "enum",
	},
}

var semanticTokenTypeIndex = map[tooling.SemanticTokenType]uint32{
	tooling.SemanticTokenKeyword:    0,
	tooling.SemanticTokenComment:    1,
	tooling.SemanticTokenNumber:     2,
	tooling.SemanticTokenString:     3,
	tooling.SemanticTokenOperator:   4,
	tooling.SemanticTokenType_:      5,
	tooling.SemanticTokenEnumMember: 6,
	tooling.SemanticTokenInterface:  7,
	tooling.SemanticTokenStruct:     8,
	tooling.SemanticTokenParameter:  9,
	tooling.SemanticTokenVariable:   10,
	tooling.SemanticTokenProperty:   11,
	tooling.SemanticTokenFunction:   12,
	tooling.SemanticTokenMethod:     13,
	tooling.SemanticTokenNamespace:  14,
	tooling.SemanticTokenMacro:      15,
	tooling.SemanticTokenModule:     16,
	tooling.SemanticTokenEnum:       17,
}

func toSourcePosition(p protocol.Position) source.Position {
	return source.Position{Line: p.Line, Column: p.Character}
}

func toProtocolPosition(p source.Position) protocol.Position {
	return protocol.Position{Line: p.Line, Character: p.Column}
}

func toProtocolRange(r source.Range) protocol.Range {
	return protocol.Range{Start: toProtocolPosition(r.Start), End: toProtocolPosition(r.Stop)}
}

func convertSeverity(s diag.Severity) protocol.DiagnosticSeverity {
	switch s {
	case diag.SeverityError:
		return protocol.DiagnosticSeverityError
	case diag.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	case diag.SeverityInformation:
		return protocol.DiagnosticSeverityInformation
	case diag.SeverityHint:
		return protocol.DiagnosticSeverityHint
	default:
		return protocol.DiagnosticSeverityError
	}
}

func convertTag(t diag.Tag) []protocol.DiagnosticTag {
	switch t {
	case diag.TagUnnecessary:
		return []protocol.DiagnosticTag{protocol.DiagnosticTagUnnecessary}
	case diag.TagDeprecated:
		return []protocol.DiagnosticTag{protocol.DiagnosticTagDeprecated}
	default:
		return nil
	}
}

func convertDiagnostic(d diag.Diagnostic) protocol.Diagnostic {
	related := make([]protocol.DiagnosticRelatedInformation, 0, len(d.Related))
	for _, r := range d.Related {
		related = append(related, protocol.DiagnosticRelatedInformation{
			Location: protocol.Location{Range: toProtocolRange(r.Location)},
			Message:  r.Message,
		})
	}
	return protocol.Diagnostic{
		Range:              toProtocolRange(d.Range),
		Severity:           convertSeverity(d.Severity),
		Message:            d.Message,
		Tags:               convertTag(d.Tag),
		RelatedInformation: related,
		Source:             "kieli",
	}
}

func convertSymbolKind(k tooling.SymbolKind) protocol.SymbolKind {
	switch k {
	case tooling.SymbolKindFunction:
		return protocol.SymbolKindFunction
	case tooling.SymbolKindStruct:
		return protocol.SymbolKindStruct
	case tooling.SymbolKindEnum:
		return protocol.SymbolKindEnum
	case tooling.SymbolKindConstructor:
		return protocol.SymbolKindEnumMember
	case tooling.SymbolKindField:
		return protocol.SymbolKindField
	case tooling.SymbolKindConcept:
		return protocol.SymbolKindInterface
	case tooling.SymbolKindAlias:
		return protocol.SymbolKindTypeParameter
	case tooling.SymbolKindModule:
		return protocol.SymbolKindModule
	case tooling.SymbolKindVariable:
		return protocol.SymbolKindVariable
	default:
		return protocol.SymbolKindObject
	}
}

func convertCompletionKind(k tooling.CompletionKind) protocol.CompletionItemKind {
	switch k {
	case tooling.CompletionKindKeyword:
		return protocol.CompletionItemKindKeyword
	case tooling.CompletionKindFunction:
		return protocol.CompletionItemKindFunction
	case tooling.CompletionKindStruct:
		return protocol.CompletionItemKindStruct
	case tooling.CompletionKindEnum:
		return protocol.CompletionItemKindEnum
	case tooling.CompletionKindVariable:
		return protocol.CompletionItemKindVariable
	case tooling.CompletionKindModule:
		return protocol.CompletionItemKindModule
	default:
		return protocol.CompletionItemKindText
	}
}

func convertSymbol(sym tooling.Symbol) protocol.DocumentSymbol {
	children := make([]protocol.DocumentSymbol, 0, len(sym.Children))
	for _, c := range sym.Children {
		children = append(children, convertSymbol(c))
	}
	rng := toProtocolRange(sym.Range)
	nameRange := toProtocolRange(sym.NameRange)
	return protocol.DocumentSymbol{
		Name:           sym.Name,
		Detail:         sym.Detail,
		Kind:           convertSymbolKind(sym.Kind),
		Range:          rng,
		SelectionRange: nameRange,
		Children:       children,
	}
}

func (s *Server) handleHover(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.HoverParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return replyError(ctx, reply, "failed to parse hover params")
	}
	id, ok := s.api.DocumentID(string(params.TextDocument.URI))
	if !ok {
		return reply(ctx, nil, nil)
	}
	hover, ok := s.api.GetHover(id, toSourcePosition(params.Position))
	if !ok {
		return reply(ctx, nil, nil)
	}
	rng := toProtocolRange(hover.Range)
	return reply(ctx, &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.Markdown, Value: hover.Contents},
		Range:    &rng,
	}, nil)
}

func (s *Server) handleDefinition(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DefinitionParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return replyError(ctx, reply, "failed to parse definition params")
	}
	id, ok := s.api.DocumentID(string(params.TextDocument.URI))
	if !ok {
		return reply(ctx, nil, nil)
	}
	loc, ok := s.api.GetDefinition(id, toSourcePosition(params.Position))
	if !ok {
		return reply(ctx, nil, nil)
	}
	return reply(ctx, protocol.Location{
		URI:   protocol.DocumentURI(loc.Path),
		Range: toProtocolRange(loc.Range),
	}, nil)
}

func (s *Server) handleReferences(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.ReferenceParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return replyError(ctx, reply, "failed to parse references params")
	}
	id, ok := s.api.DocumentID(string(params.TextDocument.URI))
	if !ok {
		return reply(ctx, []protocol.Location{}, nil)
	}
	locs, ok := s.api.GetReferences(id, toSourcePosition(params.Position), params.Context.IncludeDeclaration)
	if !ok {
		return reply(ctx, []protocol.Location{}, nil)
	}
	out := make([]protocol.Location, 0, len(locs))
	for _, l := range locs {
		out = append(out, protocol.Location{URI: protocol.DocumentURI(l.Path), Range: toProtocolRange(l.Range)})
	}
	return reply(ctx, out, nil)
}

func (s *Server) handleCompletion(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.CompletionParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return replyError(ctx, reply, "failed to parse completion params")
	}
	id, ok := s.api.DocumentID(string(params.TextDocument.URI))
	if !ok {
		return reply(ctx, protocol.CompletionList{}, nil)
	}
	items, ok := s.api.GetCompletions(id, toSourcePosition(params.Position))
	if !ok {
		return reply(ctx, protocol.CompletionList{}, nil)
	}
	out := make([]protocol.CompletionItem, 0, len(items))
	for _, it := range items {
		out = append(out, protocol.CompletionItem{
			Label:  it.Label,
			Kind:   convertCompletionKind(it.Kind),
			Detail: it.Detail,
		})
	}
	return reply(ctx, protocol.CompletionList{Items: out}, nil)
}

func (s *Server) handleDocumentSymbol(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DocumentSymbolParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return replyError(ctx, reply, "failed to parse documentSymbol params")
	}
	id, ok := s.api.DocumentID(string(params.TextDocument.URI))
	if !ok {
		return reply(ctx, []protocol.DocumentSymbol{}, nil)
	}
	syms, ok := s.api.GetDocumentSymbols(id)
	if !ok {
		return reply(ctx, []protocol.DocumentSymbol{}, nil)
	}
	out := make([]protocol.DocumentSymbol, 0, len(syms))
	for _, sym := range syms {
		out = append(out, convertSymbol(sym))
	}
	return reply(ctx, out, nil)
}

// handleSemanticTokensFull converts tooling.GetSemanticTokens's result to
// the LSP delta-encoded integer array (§6.3): five integers per token
// (deltaLine, deltaStart, length, tokenType, tokenModifiers), with
// deltaLine/deltaStart relative to the previous token in document order.
func (s *Server) handleSemanticTokensFull(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.SemanticTokensParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return replyError(ctx, reply, "failed to parse semanticTokens params")
	}
	id, ok := s.api.DocumentID(string(params.TextDocument.URI))
	if !ok {
		return reply(ctx, &protocol.SemanticTokens{}, nil)
	}
	whole := source.Range{
		Start: source.Position{Line: 0, Column: 0},
		Stop:  source.Position{Line: ^uint32(0), Column: ^uint32(0)},
	}
	tokens, ok := s.api.GetSemanticTokens(id, whole)
	if !ok {
		return reply(ctx, &protocol.SemanticTokens{}, nil)
	}

	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevStart uint32
	for i, t := range tokens {
		deltaLine := t.Range.Start.Line - prevLine
		deltaStart := t.Range.Start.Column
		if deltaLine == 0 && i > 0 {
			deltaStart = t.Range.Start.Column - prevStart
		}
		length := t.Range.Stop.Column - t.Range.Start.Column
		if t.Range.Stop.Line != t.Range.Start.Line {
			length = 0 // multi-line token; not expected from the lexer's single-line tokens
		}
		data = append(data, deltaLine, deltaStart, length, semanticTokenTypeIndex[t.Type], 0)
		prevLine = t.Range.Start.Line
		prevStart = t.Range.Start.Column
	}
	return reply(ctx, &protocol.SemanticTokens{Data: data}, nil)
}

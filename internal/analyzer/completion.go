package analyzer

import (
	"fmt"

	"github.com/pordosol/pordosol-ls/internal/docs"
	"github.com/pordosol/pordosol-ls/internal/pordosol"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (a *porDoSolAnalyzer) OnCompletion(m *pordosol.Model, pos protocol.Position) []protocol.CompletionItem {
	if m == nil {
		return nil
	}
	ctx := pordosol.Classify(m, pos, m.LinePrefix(pos))

	var items []protocol.CompletionItem
	switch ctx.Kind {
	case pordosol.ContextInterpolation:
		items = a.symbolItems(m, pordosol.SymbolVariable, pordosol.SymbolParameter, pordosol.SymbolProperty)

	case pordosol.ContextClassBody:
		items = a.keywordItems(docs.CategoryModifier, docs.CategoryType, docs.CategoryAccessor)
		if e, ok := a.docs.Lookup(docs.TopicFuncao); ok {
			items = append(items, a.keywordItem(e))
		}
		if ctx.EnclosingClass != "" {
			items = append(items, constructorItem(ctx.EnclosingClass))
		}
		items = append(items, a.symbolItems(m, pordosol.SymbolClass)...)

	case pordosol.ContextCondition:
		items = a.keywordItems(docs.CategoryOperator)
		items = append(items, a.valueItems()...)
		items = append(items, a.symbolItems(m, pordosol.SymbolVariable, pordosol.SymbolParameter, pordosol.SymbolProperty, pordosol.SymbolFunction)...)
		if e, ok := a.docs.Lookup(docs.TopicEntao); ok {
			items = append(items, a.keywordItem(e))
		}

	case pordosol.ContextAfterAssignment:
		if ctx.WantsClassName {
			items = a.classItems(m)
			break
		}
		items = a.valueItems()
		items = append(items, a.symbolItems(m, pordosol.SymbolVariable, pordosol.SymbolParameter, pordosol.SymbolProperty, pordosol.SymbolFunction)...)

	case pordosol.ContextMemberAccess:
		items = a.memberItems(m, ctx)

	case pordosol.ContextParamList:
		items = a.keywordItems(docs.CategoryType)
		items = append(items, a.symbolItems(m, pordosol.SymbolClass)...)

	default:
		items = a.keywordItems(docs.CategoryControl, docs.CategoryDeclarator, docs.CategoryFunction, docs.CategoryType, docs.CategoryModifier)
		items = append(items, a.symbolItems(m, pordosol.SymbolVariable, pordosol.SymbolParameter, pordosol.SymbolFunction, pordosol.SymbolClass)...)
	}

	return finishItems(items, ctx.PartialText)
}

// ResolveCompletion attaches documentation to a keyword item using the topic
// carried in its data field.
func (a *porDoSolAnalyzer) ResolveCompletion(item *protocol.CompletionItem) *protocol.CompletionItem {
	topic, ok := topicOf(item.Data)
	if !ok {
		return item
	}
	if e, ok := a.docs.Lookup(topic); ok && e.Summary != "" {
		item.Documentation = e.Summary
	}
	return item
}

// topicOf decodes an item's data field; JSON numbers arrive as float64.
func topicOf(data any) (docs.Topic, bool) {
	switch v := data.(type) {
	case docs.Topic:
		return v, v != docs.TopicNone
	case int:
		return docs.Topic(v), v != 0
	case float64:
		return docs.Topic(v), v != 0
	}
	return docs.TopicNone, false
}

func (a *porDoSolAnalyzer) keywordItem(e *docs.Entry) protocol.CompletionItem {
	item := protocol.CompletionItem{
		Label:  e.Label,
		Kind:   ptr(completionKind(e.Category)),
		Detail: ptr(e.Detail),
		Data:   int(e.Topic),
	}
	if e.Snippet != "" {
		item.InsertText = ptr(e.Snippet)
		item.InsertTextFormat = ptr(protocol.InsertTextFormatSnippet)
	}
	return item
}

func (a *porDoSolAnalyzer) keywordItems(cats ...docs.Category) []protocol.CompletionItem {
	var items []protocol.CompletionItem
	for _, e := range a.docs.InCategory(cats...) {
		items = append(items, a.keywordItem(e))
	}
	return items
}

// valueItems are literal values plus 'novo'.
func (a *porDoSolAnalyzer) valueItems() []protocol.CompletionItem {
	return a.keywordItems(docs.CategoryValue)
}

func symbolItem(sym *pordosol.Symbol) protocol.CompletionItem {
	detail := sym.Detail
	if detail == "" {
		detail = kindLabel(sym.Kind)
	}
	return protocol.CompletionItem{
		Label:         sym.Name,
		Kind:          ptr(symbolCompletionKind(sym.Kind)),
		Detail:        ptr(detail),
		Documentation: fmt.Sprintf("%s '%s' (linguagem Por Do Sol)", capitalize(kindLabel(sym.Kind)), sym.Name),
	}
}

func (a *porDoSolAnalyzer) symbolItems(m *pordosol.Model, kinds ...pordosol.SymbolKind) []protocol.CompletionItem {
	var items []protocol.CompletionItem
	for _, sym := range m.Symbols.OfKind(kinds...) {
		items = append(items, symbolItem(sym))
	}
	return items
}

// classItems follow 'novo': each class is offered as a constructor call.
func (a *porDoSolAnalyzer) classItems(m *pordosol.Model) []protocol.CompletionItem {
	var items []protocol.CompletionItem
	for _, cls := range m.Symbols.OfKind(pordosol.SymbolClass) {
		item := symbolItem(cls)
		item.InsertText = ptr(cls.Name + "($1)")
		item.InsertTextFormat = ptr(protocol.InsertTextFormatSnippet)
		items = append(items, item)
	}
	return items
}

func (a *porDoSolAnalyzer) memberItems(m *pordosol.Model, ctx pordosol.CompletionContext) []protocol.CompletionItem {
	cls, ok := m.Symbols.Lookup(ctx.EnclosingClass)
	if !ok || cls.Kind != pordosol.SymbolClass {
		return nil
	}
	staticAccess := ctx.Receiver == cls.Name
	var items []protocol.CompletionItem
	for _, member := range cls.Members {
		if member.Kind == pordosol.SymbolConstructor {
			continue
		}
		if staticAccess && !member.Static && !cls.Static {
			continue
		}
		item := symbolItem(member)
		if member.Kind == pordosol.SymbolMethod {
			item.InsertText = ptr(member.Name + "($1)")
			item.InsertTextFormat = ptr(protocol.InsertTextFormatSnippet)
		}
		items = append(items, item)
	}
	return items
}

func constructorItem(class string) protocol.CompletionItem {
	return protocol.CompletionItem{
		Label:            class,
		Kind:             ptr(protocol.CompletionItemKindConstructor),
		Detail:           ptr("Construtor de " + class),
		InsertText:       ptr(class + "(${1}) {\n\t$2\n}"),
		InsertTextFormat: ptr(protocol.InsertTextFormatSnippet),
	}
}

// finishItems drops duplicates and items not matching partial, and pins the
// order with SortText.
func finishItems(items []protocol.CompletionItem, partial string) []protocol.CompletionItem {
	out := make([]protocol.CompletionItem, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if seen[item.Label] || !hasPrefixFold(item.Label, partial) {
			continue
		}
		seen[item.Label] = true
		item.SortText = ptr(fmt.Sprintf("%04d", len(out)))
		out = append(out, item)
	}
	return out
}

package lsp

import (
	"strings"

	"go.lsp.dev/protocol"

	"github.com/jward/frond"
	"github.com/jward/frond/internal/scope"
)

func completionItem(p frond.Proposal, ctx frond.Context) protocol.CompletionItem {
	item := protocol.CompletionItem{
		Label: p.Name,
		Kind:  protocol.CompletionItemKindText,
	}
	b := p.Binding
	if b == nil {
		return item
	}
	item.Kind = completionKind(b.Kind, ctx)
	if len(b.Types) > 0 {
		names := make([]string, 0, len(b.Types))
		for _, t := range b.Types {
			if s := t.String(); s != "" {
				names = append(names, s)
			}
		}
		item.Detail = strings.Join(names, " | ")
	}
	return item
}

func completionKind(k scope.BindingKind, ctx frond.Context) protocol.CompletionItemKind {
	switch k {
	case scope.BindFunc:
		if ctx == frond.ContextMember {
			return protocol.CompletionItemKindMethod
		}
		return protocol.CompletionItemKindFunction
	case scope.BindClass:
		return protocol.CompletionItemKindClass
	case scope.BindImport:
		return protocol.CompletionItemKindModule
	case scope.BindMember:
		return protocol.CompletionItemKindField
	}
	if ctx == frond.ContextMember {
		return protocol.CompletionItemKindProperty
	}
	return protocol.CompletionItemKindVariable
}

package extract

import "fmt"

// systemPrompt is the fixed instruction set for the vision model. The
// reply contract (keys, credit/debit literals, ESTORNO handling) is relied
// on by decodePage and the document generator; keep them in sync.
const systemPrompt = `Você é um especialista em extrair dados de extratos bancários brasileiros.

Sua tarefa é analisar a imagem de uma página de extrato bancário e extrair TODOS os lançamentos.

REGRAS CRÍTICAS:
1. Extraia ABSOLUTAMENTE TODOS os lançamentos visíveis na página. Não pule nenhum.
2. Mantenha a ordem exata em que aparecem no extrato.
3. Se um lançamento tem valor na coluna "Crédito (R$)", o tipo é "C".
4. Se um lançamento tem valor na coluna "Débito (R$)", o tipo é "D".
5. A data pode estar em branco se for a mesma data do lançamento anterior - nesse caso, repita a data anterior.
6. O valor deve ser extraído SEM o "R$", apenas o número com vírgula (ex: "34.695,00").
7. Na descrição, inclua o texto principal E os detalhes (como DEST:, CONTR:, etc.) em uma única linha.
8. Ignore linhas de cabeçalho, rodapé, saldo anterior e saldo do dia.
9. ESTORNO deve ser tratado como crédito (C) pois devolve dinheiro.

Retorne APENAS um JSON válido no seguinte formato, sem markdown, sem ` + "```json" + `, apenas o JSON puro:
{
  "lancamentos": [
    {
      "data": "DD/MM/AAAA",
      "tipo": "C" ou "D",
      "descricao": "Descrição completa do lançamento",
      "valor": "1.234,56"
    }
  ],
  "pagina_tem_continuacao": true/false,
  "observacoes": "qualquer observação relevante sobre a extração"
}

Se a página não contiver lançamentos (ex: capa, resumo), retorne:
{
  "lancamentos": [],
  "pagina_tem_continuacao": false,
  "observacoes": "Página sem lançamentos"
}
`

// buildPagePrompt renders the per-call user message, embedding the page
// number and, when known, the date carried forward from earlier pages.
func buildPagePrompt(page int, lastDate string) string {
	msg := fmt.Sprintf("Analise esta página %d do extrato bancário e extraia todos os lançamentos.", page)
	if lastDate != "" {
		msg += fmt.Sprintf("\nA última data da página anterior foi: %s. Use-a para lançamentos sem data explícita.", lastDate)
	}
	return msg
}

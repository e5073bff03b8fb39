package messages

import "reactivation/internal/domain"

var templates = map[string][]string{
	domain.TemplateUrgentFinancial: {
		`Oi {nome}! 😊
Vi que você era {plano} e ficou com a gente por {tempo}... sentimos sua falta!
Sei que às vezes o orçamento aperta, então trouxe uma oportunidade ESPECIAL:
🔥 PLANO ANUAL R$ 119,00
• Acesso ilimitado todos os dias
• Todas as aulas inclusas
Essa oferta é só até AMANHÃ. Bora voltar? 💪`,
		`Fala {nome}! Tudo certo?
Quando você saiu era questão de {motivo}... mas trouxe algo que vai te interessar:
🎯 VOLTA CAMPEÃO - R$ 119/ANO
✅ Mesmos benefícios do {plano}
✅ Zero burocracia pra voltar
São só {vagas} vagas nessa condição. Garante a sua?`,
	},
	domain.TemplateFlexibility: {
		`Oi {nome}! Como tá a rotina?
Lembro que você comentou sobre {motivo}... então vim com uma solução:
⏰ HORÁRIOS FLEXÍVEIS
• Aberto 5h às 23h (seg-sex)
• Treino rápido de 30min
BÔNUS: primeira semana GRÁTIS pra testar sem compromisso!
Que tal?`,
		`{nome}! 👊
Saudades de te ver por aqui... {tempo} foi pouco! 😅
📅 Horários super flexíveis
⚡ Treinos expressos de 30min
E pra comemorar seu retorno: SEMANA GRÁTIS.
Amanhã tá bom pra você?`,
	},
	domain.TemplateLoyaltyWinback: {
		`{nome}! 💙
{tempo} com a gente te transformaram em família!
Preparamos algo EXCLUSIVO pra você:
👑 {oferta}
• R$ 119 anual (ex-{plano})
• Avaliação física grátis
Aceita voltar pra casa?`,
		`Oi {nome}! Saudades daqui 🥺
{tempo} treinando com consistência merece reconhecimento!
🏆 OFERTA CAMPEÃO
✓ Plano Anual R$ 119
✓ Amigo treina grátis por 1 semana
Topas?`,
	},
	domain.TemplateGenericReturn: {
		`Oi {nome}, tudo bem?
Faz um tempo que não te vejo por aqui... sentimos sua falta! 💪
🎁 PRESENTE PRA VOCÊ: {oferta}
• Aula experimental sem custo
• Plano especial de retorno
Nada de compromisso, só vem conhecer! Aceita?`,
		`{nome}! 👋
A academia não é a mesma sem você...
Bora marcar um papo sem compromisso?
🎯 No seu tempo, sem pressão
🎁 {oferta}
Quando você pode?`,
	},
}

type stageText struct {
	opener string
	cta    string
}

var stageTexts = map[domain.Stage]stageText{
	domain.StageReinforcement: {
		opener: `%s, tudo bem? 👋
Sei que você viu minha mensagem sobre o Plano Anual R$ 119...
Só passando pra reforçar:`,
		cta: `⏰ Confirma pra mim até hoje?
Só dizer: QUERO!`,
	},
	domain.StageUrgency: {
		opener: `%s! ⏰
ÚLTIMA CHANCE - a condição especial acaba HOJE!`,
		cta: `🔥 Confirma pra mim AGORA? Só dizer SIM! 💪`,
	},
}

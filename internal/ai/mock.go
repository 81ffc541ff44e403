package ai

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/01moynul/taptosell-creatives/internal/models"
)

// MockDelays simulates the latency of the live service in mock mode.
type MockDelays struct {
	Import time.Duration
	Video  time.Duration
	Image  time.Duration
	Copy   time.Duration
	Page   time.Duration
}

func DefaultMockDelays() MockDelays {
	return MockDelays{
		Import: time.Second,
		Video:  time.Second,
		Image:  1500 * time.Millisecond,
		Copy:   time.Second,
		Page:   2 * time.Second,
	}
}

// Scale multiplies every delay by f; f <= 0 disables the delays.
func (d MockDelays) Scale(f float64) MockDelays {
	if f <= 0 {
		return MockDelays{}
	}
	mul := func(v time.Duration) time.Duration { return time.Duration(float64(v) * f) }
	return MockDelays{
		Import: mul(d.Import),
		Video:  mul(d.Video),
		Image:  mul(d.Image),
		Copy:   mul(d.Copy),
		Page:   mul(d.Page),
	}
}

// importPlaceholderImages replace the images of an imported product; the
// model is never asked for product photos.
var importPlaceholderImages = []string{
	"https://picsum.photos/seed/gen1/800/800",
	"https://picsum.photos/seed/gen2/800/800",
}

var mockProduct = models.Product{
	Title:         "Smartwatch Pro X",
	Description:   "O relógio inteligente definitivo para um estilo de vida ativo. Monitore sua saúde, receba notificações e fique conectado com estilo. Bateria de longa duração e design à prova d'água.",
	Images:        []string{"https://picsum.photos/seed/watch1/800/800", "https://picsum.photos/seed/watch2/800/800"},
	Variations:    []string{"Preto", "Prata", "Azul"},
	SupplierPrice: 45.50,
}

const mockVideoScript = `**Cena 1:** Close-up do Smartwatch Pro X no pulso de alguém correndo.

**Texto na tela:** Cansado de ser mediano?

**Voz:** Eleve seu jogo. O Smartwatch Pro X está aqui.

**Cena 2:** Pessoa recebe uma notificação de mensagem no relógio e sorri.

**CTA:** Arrasta pra cima e garanta o seu!`

func mockAdCopy(p models.Product) string {
	return fmt.Sprintf("🚀 Transforme sua vida com o %s! 🚀 Monitore sua saúde, fique conectado e faça tudo com estilo. 💪\n\n🔥 OFERTA ESPECIAL: 50%% OFF + Frete Grátis! 🔥\n\nClique no link para garantir o seu antes que acabe! 👉 [LINK]", p.Title)
}

func mockImageURL() string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/1024/1024", uuid.NewString())
}

var mockSalesPage = models.SalesPage{
	Headline: "Transforme Seu Pulso no Centro de Comando da Sua Vida com o Smartwatch Pro X!",
	Opening:  "Cansado de perder notificações importantes e lutar para acompanhar suas metas de saúde? O Smartwatch Pro X não é apenas um relógio. É seu assistente pessoal, seu personal trainer e sua conexão com o mundo, tudo em um design elegante e poderoso.",
	Benefits: []models.Benefit{
		{Icon: "Heart", Title: "Monitoramento de Saúde 24/7", Text: "Acompanhe sua frequência cardíaca, oxigênio no sangue e padrões de sono com precisão."},
		{Icon: "Message", Title: "Notificações Instantâneas", Text: "Nunca perca uma chamada, mensagem ou alerta importante. Veja tudo diretamente no seu pulso."},
		{Icon: "Battery", Title: "Bateria de Longa Duração", Text: "Passe dias sem recarregar. Nossa bateria otimizada acompanha seu ritmo de vida agitado."},
	},
	HowItWorks: "É simples! Conecte o Smartwatch Pro X ao seu smartphone via Bluetooth, instale nosso aplicativo gratuito e comece a personalizar mostradores e notificações. Em minutos, você estará no controle total.",
	Testimonials: []models.Testimonial{
		{Name: "Joana F.", Text: "Absolutamente incrível! Me ajuda a manter o foco nos treinos e a não perder nenhuma ligação do trabalho. Recomendo!", Rating: 5},
		{Name: "Carlos M.", Text: "O design é muito premium e a bateria dura muito mais do que meu relógio antigo. Valeu cada centavo.", Rating: 5},
	},
	Urgency: "Oferta por tempo limitado! Compre agora e receba 50% de desconto e frete grátis para todo o Brasil. Estoque acabando!",
	CTA:     "Eu Quero Meu Smartwatch Pro X Agora!",
}

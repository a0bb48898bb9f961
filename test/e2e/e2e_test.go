// test/e2e/e2e_test.go
package e2e

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"medical-qa-bot/internal/answer"
	"medical-qa-bot/internal/app"
	"medical-qa-bot/internal/chat"
	"medical-qa-bot/internal/common/config"
	"medical-qa-bot/internal/common/database"
	"medical-qa-bot/internal/common/logger"
	"medical-qa-bot/internal/knowledge"
	"medical-qa-bot/internal/pipeline"

	"github.com/alicebob/miniredis/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const repoData = "../../data"

// ==========================
// Test Helper Functions
// ==========================

func repoConfig() *config.Config {
	return &config.Config{
		Data: config.DataConfig{
			DictDir:       filepath.Join(repoData, "dict"),
			KnowledgeFile: filepath.Join(repoData, "medical.json"),
		},
		Knowledge: config.KnowledgeConfig{
			Backend:     config.BackendFile,
			Table:       "medical_records_e2e",
			Index:       "medical_records_e2e",
			RedisKey:    "medqa:e2e",
			MaxRecords:  1000,
			LoadTimeout: 10000,
			MaxRetries:  2,
			RetryDelay:  100,
		},
		Bot: config.BotConfig{Name: "小勇", ExitTokens: config.DefaultExitTokens},
	}
}

func repoRecords(t *testing.T) *knowledge.LoadResult {
	t.Helper()
	f, err := os.Open(filepath.Join(repoData, "medical.json"))
	require.NoError(t, err)
	defer f.Close()

	result, err := knowledge.ReadJSONLines(f, "e2e")
	require.NoError(t, err)
	require.Empty(t, result.Skipped, "repository knowledge file must be clean")
	return result
}

type golden struct {
	question string
	outcome  pipeline.Outcome
	text     string
}

var demoGolden = []golden{
	{"乳腺癌的症状有哪些？", pipeline.OutcomeAnswered, "乳腺癌的症状包括：乳房肿块；乳头溢液；乳头凹陷；皮肤橘皮样改变；腋窝淋巴结肿大"},
	{"糖尿病", pipeline.OutcomeAnswered, "糖尿病，熟悉一下：糖尿病是一组以高血糖为特征的代谢性疾病，由胰岛素分泌缺陷或其生物作用受损引起。"},
	{"为什么有的人会失眠？", pipeline.OutcomeAnswered, "失眠可能的成因有：精神压力大、焦虑抑郁、作息不规律、环境干扰以及咖啡因摄入过多等。"},
	{"感冒要多久才能好？", pipeline.OutcomeAnswered, "感冒的治疗信息：\n治疗方式：多休息；多饮水；对症药物治疗\n治疗周期：7-10天\n治愈概率：99%"},
	{"高血压怎么治疗？", pipeline.OutcomeAnswered, "高血压的治疗信息：\n治疗方式：生活方式干预；降压药物治疗；定期监测血压\n治疗周期：需长期治疗\n治愈概率：不能根治，可以有效控制"},
	{"肺癌的症状是什么？", pipeline.OutcomeAnswered, "肺癌的症状包括：咳嗽；咯血；胸痛；呼吸困难；体重下降"},
	{"如何预防心脏病？", pipeline.OutcomeAnswered, "心脏病，熟悉一下：心脏病是心脏疾病的总称，包括冠心病、心律失常、心肌病等多种疾病。"},
	{"今天天气怎么样", pipeline.OutcomeGreeting, answer.Greeting},
	{"冠心病怎么治疗", pipeline.OutcomeNotFound, answer.RecordNotFound},
}

func assertGolden(t *testing.T, p *pipeline.Pipeline) {
	t.Helper()
	for _, g := range demoGolden {
		res := p.Resolve(context.Background(), g.question)
		assert.Equal(t, g.outcome, res.Outcome, g.question)
		assert.Equal(t, g.text, res.Text, g.question)
	}
}

// ==========================
// File Backend
// ==========================

func TestE2E_FileBackendGolden(t *testing.T) {
	a, err := app.New(context.Background(), repoConfig(), logger.NewTestLogger(t))
	require.NoError(t, err)
	defer a.Close()

	assertGolden(t, a.Pipeline)
}

func TestE2E_DemoTranscript(t *testing.T) {
	cfg := repoConfig()
	a, err := app.New(context.Background(), cfg, logger.NewNoOpLogger())
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, chat.NewDemo(a.Pipeline, cfg.Bot.Name, config.DefaultDemoQuestions).Run(context.Background(), &out))

	transcript := out.String()
	assert.True(t, strings.HasPrefix(transcript, strings.Repeat("=", 60)+"\n医疗知识图谱问答系统演示\n"))
	for _, g := range demoGolden[:7] {
		assert.Contains(t, transcript, "用户: "+g.question+"\n小勇: "+g.text+"\n")
	}
}

func TestE2E_ChatSession(t *testing.T) {
	cfg := repoConfig()
	a, err := app.New(context.Background(), cfg, logger.NewNoOpLogger())
	require.NoError(t, err)

	var out bytes.Buffer
	in := strings.NewReader("糖尿病有什么症状\n你好\nEXIT\n")
	require.NoError(t, chat.NewREPL(a.Pipeline, cfg.Bot, logger.NewTestLogger(t)).Run(context.Background(), in, &out))

	transcript := out.String()
	assert.Contains(t, transcript, "小勇: 糖尿病的症状包括：多饮；多尿；多食；体重下降；乏力；视物模糊\n")
	assert.Contains(t, transcript, "小勇: "+answer.Greeting+"\n")
	assert.True(t, strings.HasSuffix(transcript, "用户: 感谢使用医疗知识图谱问答系统，再见！\n"))
}

// ==========================
// Redis Backend (in-memory server)
// ==========================

func TestE2E_RedisBackendGolden(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := repoConfig()
	cfg.Knowledge.Backend = config.BackendRedis
	cfg.Database.Redis.Address = mr.Addr()

	rdb, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err)
	defer rdb.Close()

	loaded := repoRecords(t)
	require.NoError(t, knowledge.SeedRedis(context.Background(), rdb.Client, cfg.Knowledge.RedisKey, loaded.Records))

	a, err := app.New(context.Background(), cfg, logger.NewTestLogger(t))
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, len(loaded.Records), a.Knowledge.Len())
	assertGolden(t, a.Pipeline)
}

// ==========================
// Live Services
// ==========================

// TestE2E_LiveBackends seeds and reads back real PostgreSQL, Elasticsearch and
// Redis instances. Set MEDQA_E2E=1 and the usual MEDQA_* connection settings.
func TestE2E_LiveBackends(t *testing.T) {
	if os.Getenv("MEDQA_E2E") == "" {
		t.Skip("MEDQA_E2E not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg, err := config.LoadFromFile("../../configs/config.yaml")
	require.NoError(t, err)
	base := repoConfig()
	cfg.Data = base.Data
	cfg.Knowledge = base.Knowledge

	records := repoRecords(t).Records

	t.Run("postgres", func(t *testing.T) {
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		require.NoError(t, err)
		defer pg.Close()
		require.NoError(t, pg.Ping(ctx))

		db := sqlx.NewDb(pg.DB, "postgres")
		require.NoError(t, knowledge.EnsurePostgresTable(ctx, db, cfg.Knowledge.Table))
		require.NoError(t, knowledge.SeedPostgres(ctx, db, cfg.Knowledge.Table, records))

		c := *cfg
		c.Knowledge.Backend = config.BackendPostgres
		a, err := app.New(ctx, &c, logger.NewTestLogger(t))
		require.NoError(t, err)
		defer a.Close()
		assertGolden(t, a.Pipeline)
	})

	t.Run("elasticsearch", func(t *testing.T) {
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		require.NoError(t, err)
		require.NoError(t, es.Ping(ctx))
		require.NoError(t, knowledge.IndexElasticsearch(ctx, es.Client, cfg.Knowledge.Index, records))

		c := *cfg
		c.Knowledge.Backend = config.BackendElasticsearch
		a, err := app.New(ctx, &c, logger.NewTestLogger(t))
		require.NoError(t, err)
		defer a.Close()
		assertGolden(t, a.Pipeline)
	})

	t.Run("redis", func(t *testing.T) {
		rdb, err := database.NewRedis(cfg.Database.Redis)
		require.NoError(t, err)
		defer rdb.Close()
		require.NoError(t, rdb.Ping(ctx))
		require.NoError(t, knowledge.SeedRedis(ctx, rdb.Client, cfg.Knowledge.RedisKey, records))

		c := *cfg
		c.Knowledge.Backend = config.BackendRedis
		a, err := app.New(ctx, &c, logger.NewTestLogger(t))
		require.NoError(t, err)
		defer a.Close()
		assertGolden(t, a.Pipeline)
	})
}

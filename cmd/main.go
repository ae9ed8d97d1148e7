package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	"github.com/spf13/pflag"

	"resume-parser-go/internal/api/handler"
	"resume-parser-go/internal/api/router"
	"resume-parser-go/internal/config"
	appCoreLogger "resume-parser-go/internal/logger"
	"resume-parser-go/internal/parser"
	"resume-parser-go/internal/processor"
	"resume-parser-go/internal/storage"
)

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "internal/config/config.yaml", "Path to config file")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	initLogger(cfg)
	glog.Info("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storageManager, err := storage.NewStorage(cfg)
	if err != nil {
		glog.Fatalf("初始化存储失败: %v", err)
	}
	defer storageManager.Close()
	glog.Info("存储服务初始化成功")

	// 技能词表：启动时构建一次，全程只读
	var vocab *parser.SkillVocabulary
	if len(cfg.Parser.SkillVocabulary) > 0 {
		vocab = parser.NewSkillVocabulary(cfg.Parser.SkillVocabulary)
	} else {
		vocab = parser.DefaultSkillVocabulary()
	}
	glog.Infof("技能词表初始化成功，共%d个词条", vocab.Size())

	pdfExtractor, err := parser.NewEinoPDFTextExtractor(ctx,
		parser.WithEinoLogger(log.New(os.Stderr, "[PDFMain] ", log.LstdFlags)))
	if err != nil {
		glog.Fatalf("创建PDF提取器失败: %v", err)
	}
	docxExtractor := parser.NewDOCXTextExtractor(
		parser.WithDOCXLogger(log.New(os.Stderr, "[DOCXMain] ", log.LstdFlags)))
	glog.Info("文档解码器初始化成功")

	parseTimeout, err := time.ParseDuration(cfg.Parser.ParseTimeout)
	if err != nil {
		glog.Warnf("解析parse_timeout失败 (%s): %v, 使用默认值30s", cfg.Parser.ParseTimeout, err)
		parseTimeout = 30 * time.Second
	}

	var processorLogger *log.Logger
	if cfg.Logger.Level == "debug" {
		processorLogger = log.New(os.Stderr, "[ProcessorMain] ", log.LstdFlags|log.Lshortfile)
	} else {
		processorLogger = log.New(io.Discard, "", 0)
	}

	resumeProcessor, err := processor.NewResumeProcessor(
		&processor.Components{
			PDFExtractor:  pdfExtractor,
			DOCXExtractor: docxExtractor,
			Parser:        parser.NewResumeParser(vocab),
			Storage:       storageManager,
		},
		&processor.Settings{
			Debug:  cfg.Logger.Level == "debug",
			Logger: processorLogger,
		},
		processor.WithParseTimeout(parseTimeout),
	)
	if err != nil {
		glog.Fatalf("初始化ResumeProcessor失败: %v", err)
	}
	glog.Info("ResumeProcessor初始化成功")

	resumeHandler := handler.NewResumeHandler(cfg, storageManager, resumeProcessor)

	// 配置了消息队列才启动异步消费者，否则上传请求内同步处理
	if storageManager.RabbitMQ != nil {
		if err := resumeHandler.StartResumeUploadConsumer(ctx); err != nil {
			glog.Fatalf("启动简历解析消费者失败: %v", err)
		}
		glog.Infof("简历解析消费者已启动，工作线程数: %d", cfg.RabbitMQ.ConsumerWorkers)
	} else {
		glog.Warn("RabbitMQ未配置，上传请求将同步处理")
	}

	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
	)
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		glog.CtxInfof(c, "Request: %s %s", string(ctx.Method()), string(ctx.Path()))
		ctx.Next(c)
		glog.CtxInfof(c, "Response: status %d", ctx.Response.StatusCode())
	})

	router.RegisterRoutes(h, cfg, resumeHandler)
	glog.Info("HTTP路由注册成功")

	go func() {
		glog.Infof("HTTP 服务器启动中，监听地址: %s", cfg.Server.Address)
		if err := h.Run(); err != nil {
			glog.Fatalf("启动HTTP服务器失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	glog.Info("接收到终止信号，正在优雅退出...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		glog.Errorf("服务器关闭失败: %v", err)
	}
	glog.Info("优雅退出完成")
}

func initLogger(cfg *config.Config) {
	appCoreLogger.Init(appCoreLogger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})

	// Hertz的日志走同一个zerolog实例
	glog.SetLogger(hertzadapter.From(appCoreLogger.Logger))
}

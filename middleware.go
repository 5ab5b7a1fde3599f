package ebatch

// Middleware 包装一个执行器，返回增强之后的执行器
type Middleware func(next Executor) Executor

// Wrap 由外到内依次把中间件套在执行器上，mdls[0] 在最外层
func Wrap(e Executor, mdls ...Middleware) Executor {
	for i := len(mdls) - 1; i >= 0; i-- {
		e = mdls[i](e)
	}
	return e
}
